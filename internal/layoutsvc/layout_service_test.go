package layoutsvc

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/dgraph-io/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Boot mouse descriptor: 3 buttons, 8-bit X/Y.
const bootMouse = `
05 01 09 02 A1 01 09 01 A1 00 05 09 19 01 29 03
15 00 25 01 95 03 75 01 81 02 95 01 75 05 81 01
05 01 09 30 09 31 15 81 25 7F 75 08 95 02 81 06
C0 C0
`

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()
	options := badger.DefaultOptions(t.TempDir())
	options.Logger = nil
	db, err := badger.Open(options)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

func descriptorBytes(t *testing.T) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.Join(strings.Fields(bootMouse), ""))
	require.NoError(t, err)
	return b
}

func TestResolve(t *testing.T) {
	db := openTestDB(t)
	svc := New(db, zap.NewNop())

	desc := descriptorBytes(t)
	table, err := svc.Resolve(desc)
	require.NoError(t, err)
	require.Contains(t, table, uint8(0))
	assert.Equal(t, uint32(3), table[0].ButtonsCount)
	assert.Equal(t, uint32(8), table[0].XBitOffset)
	assert.Equal(t, uint32(8), table[0].XSize)
	assert.Equal(t, uint32(16), table[0].YBitOffset)
	assert.Equal(t, uint32(24), table[0].TotalBits)

	// Second resolve hits the in-memory cache.
	again, err := svc.Resolve(desc)
	require.NoError(t, err)
	assert.True(t, table.Equal(again))
}

func TestResolveUsesStoredTable(t *testing.T) {
	db := openTestDB(t)
	desc := descriptorBytes(t)

	first := New(db, zap.NewNop())
	table, err := first.Resolve(desc)
	require.NoError(t, err)

	// A fresh service with an empty in-memory cache reads the persisted
	// table from badger.
	second := New(db, zap.NewNop())
	stored, found, err := second.loadStored(descriptorHash(desc))
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, table.Equal(stored))

	resolved, err := second.Resolve(desc)
	require.NoError(t, err)
	assert.True(t, table.Equal(resolved))
}
