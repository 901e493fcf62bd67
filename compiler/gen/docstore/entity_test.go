package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenEntity(t *testing.T) {
	helper, g := newTestHelper(t)
	user := mustType(t, g, "User")

	file := genEntity(helper, user)
	require.NotNil(t, file)

	code := file.GoString()
	assert.Contains(t, code, "package model")
	assert.Contains(t, code, `"github.com/syssam/relgen"`)
	assert.Contains(t, code, `const UserCollection = "`+user.Collection+`"`)
	assert.Contains(t, code, "type UserID struct")
	assert.Contains(t, code, "type User struct")
	assert.Contains(t, code, "type UserCreate struct")
	assert.Contains(t, code, "type userWire struct")
}

func TestGenIdentity(t *testing.T) {
	helper, g := newTestHelper(t)
	code := genEntity(helper, mustType(t, g, "User")).GoString()

	assert.Contains(t, code, "func (ui UserID) Ref() relgen.Ref {")
	assert.Contains(t, code, "Collection: UserCollection,")
	assert.Contains(t, code, "func (ui UserID) CollectionIdentity() string {")
	assert.Contains(t, code, "return UserCollection")
}

func TestGenLinkHelpers(t *testing.T) {
	helper, g := newTestHelper(t)
	code := genEntity(helper, mustType(t, g, "Pet")).GoString()

	assert.Contains(t, code, "type PetLink = relgen.Link[PetID, *PetCreate]")
	assert.Contains(t, code, "func LinkPet(id PetID) PetLink {")
	assert.Contains(t, code, "return relgen.Existing[PetID, *PetCreate](id)")
	assert.Contains(t, code, "func (pc *PetCreate) Link() PetLink {")
	assert.Contains(t, code, "return relgen.Inline[PetID](pc)")
}

func TestGenView(t *testing.T) {
	helper, g := newTestHelper(t)

	t.Run("eager many link", func(t *testing.T) {
		code := genEntity(helper, mustType(t, g, "User")).GoString()
		assert.Contains(t, code, "[]*Pet")
		assert.Contains(t, code, `json:"pets"`)
		assert.Contains(t, code, "func (u *User) Identity() UserID {")
		assert.Contains(t, code, "if u == nil {")
		assert.Contains(t, code, "return UserID{ID: u.ID}")
		assert.Contains(t, code, "func (u *User) Payload() *UserCreate {")
		assert.Contains(t, code, "relgen.ExistingLinks[PetID, *PetCreate](relgen.IdentitiesOf[*Pet, PetID](u.Pets))")
	})

	t.Run("lazy single link", func(t *testing.T) {
		code := genEntity(helper, mustType(t, g, "Pet")).GoString()
		assert.Contains(t, code, "time.Time")
		assert.Contains(t, code, `"time"`)
		assert.Contains(t, code, "LinkUser(p.Owner)")
	})
}

func TestGenPayload(t *testing.T) {
	helper, g := newTestHelper(t)

	t.Run("many link", func(t *testing.T) {
		code := genEntity(helper, mustType(t, g, "User")).GoString()
		assert.Contains(t, code, "[]relgen.Link[PetID, *PetCreate]")
		assert.Contains(t, code, "// reference an existing row.\nfunc (uc *UserCreate) wire() (*userWire, error) {")
		assert.Contains(t, code, `pets, err := relgen.LinkRefs("pets", uc.Pets)`)
	})

	t.Run("single link", func(t *testing.T) {
		code := genEntity(helper, mustType(t, g, "Pet")).GoString()
		assert.Contains(t, code, "relgen.Link[UserID, *UserCreate]")
		assert.Contains(t, code, `owner, err := relgen.LinkRef("owner", pc.Owner)`)
	})
}

func TestGenWire(t *testing.T) {
	helper, g := newTestHelper(t)

	code := genEntity(helper, mustType(t, g, "User")).GoString()
	assert.Contains(t, code, `msgpack:"name"`)
	assert.Contains(t, code, `msgpack:"pets"`)
	assert.Contains(t, code, "[]relgen.Ref")

	code = genEntity(helper, mustType(t, g, "Pet")).GoString()
	assert.Contains(t, code, `msgpack:"owner"`)
}
