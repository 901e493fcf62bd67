package relgen

import "context"

// Link is the value of a link field in a creation payload: either the
// identity of an existing row, or the payload of a row to create along with
// the owner.
//
// I is the identity type of the target class and P its payload type.
type Link[I Identity, P any] struct {
	id      I
	payload P
	inline  bool
}

// Existing returns a link to an existing row.
func Existing[I Identity, P any](id I) Link[I, P] {
	return Link[I, P]{id: id}
}

// Inline returns a link to a row that is created, depth first, when the
// owning payload is created.
func Inline[I Identity, P any](payload P) Link[I, P] {
	return Link[I, P]{payload: payload, inline: true}
}

// IsInline reports if the link holds a payload still to be created.
func (l Link[I, P]) IsInline() bool {
	return l.inline
}

// Existing returns the identity of the linked row. The boolean is false for
// an inline link.
func (l Link[I, P]) Existing() (I, bool) {
	return l.id, !l.inline
}

// Inline returns the payload of an inline link. The boolean is false for a
// link to an existing row.
func (l Link[I, P]) Inline() (P, bool) {
	return l.payload, l.inline
}

// Ref returns the store reference of a link to an existing row. It fails
// with ErrUnresolvedLink for an inline link.
func (l Link[I, P]) Ref() (Ref, error) {
	if l.inline {
		return Ref{}, ErrUnresolvedLink
	}
	return l.id.Ref(), nil
}

// Resolve creates the payload of an inline link with create and replaces
// the link, in place, by a link to the created row. A link to an existing
// row is left as is. On failure the link is unchanged.
func (l *Link[I, P]) Resolve(ctx context.Context, s Store, create func(P, context.Context, Store) (I, error)) (I, error) {
	if !l.inline {
		return l.id, nil
	}
	id, err := create(l.payload, ctx, s)
	if err != nil {
		var zero I
		return zero, err
	}
	*l = Existing[I, P](id)
	return id, nil
}

// LinkRef returns the store reference of a single link field. An inline
// link yields a *LinkError wrapping ErrUnresolvedLink.
func LinkRef[I Identity, P any](field string, l Link[I, P]) (Ref, error) {
	ref, err := l.Ref()
	if err != nil {
		return Ref{}, &LinkError{Field: field, Err: err}
	}
	return ref, nil
}

// LinkRefs returns the store references of a many link field, in order.
func LinkRefs[I Identity, P any](field string, ls []Link[I, P]) ([]Ref, error) {
	refs := make([]Ref, len(ls))
	for i, l := range ls {
		ref, err := LinkRef(field, l)
		if err != nil {
			return nil, err
		}
		refs[i] = ref
	}
	return refs, nil
}

// ExistingLinks returns links to the given existing rows, in order.
func ExistingLinks[I Identity, P any](ids []I) []Link[I, P] {
	ls := make([]Link[I, P], len(ids))
	for i, id := range ids {
		ls[i] = Existing[I, P](id)
	}
	return ls
}

// RefsOf returns the store references of the given identities, in order.
func RefsOf[I Identity](ids []I) []Ref {
	refs := make([]Ref, len(ids))
	for i, id := range ids {
		refs[i] = id.Ref()
	}
	return refs
}

// Viewer is implemented by every generated view type.
type Viewer[I any] interface {
	// Identity returns the identity of the viewed row.
	Identity() I
}

// IdentitiesOf returns the identities of the given views, in order.
func IdentitiesOf[V Viewer[I], I any](views []V) []I {
	ids := make([]I, len(views))
	for i, v := range views {
		ids[i] = v.Identity()
	}
	return ids
}
