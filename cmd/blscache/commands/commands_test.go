package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	dbm "github.com/cometbft/cometbft-db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cometbft/cometbft-blscache/blscache"
	cfg "github.com/cometbft/cometbft-blscache/config"
	"github.com/cometbft/cometbft-blscache/crypto/bls12381"
	"github.com/cometbft/cometbft-blscache/libs/log"
	"github.com/cometbft/cometbft-blscache/store"
	"github.com/cometbft/cometbft-blscache/version"
)

func setupTestConfig(t *testing.T) {
	t.Helper()
	clearConfig(t)
	config = cfg.TestConfig().SetRoot(t.TempDir())
	config.DBBackend = string(dbm.GoLevelDBBackend)
	config.BLSCache.PersistSnapshot = true
	cfg.EnsureRoot(config.RootDir)
	logger = log.NewNopLogger()
}

func testRequest(t *testing.T, n int) VerifyRequest {
	t.Helper()
	in, err := newBenchInput(n)
	require.NoError(t, err)

	req := VerifyRequest{Signature: in.sig.Bytes()}
	for i, pk := range in.pks {
		req.PublicKeys = append(req.PublicKeys, pk.Bytes())
		req.Messages = append(req.Messages, in.msgs[i])
	}
	return req
}

func writeRequest(t *testing.T, req VerifyRequest) string {
	t.Helper()
	bz, err := json.Marshal(req)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "request.json")
	require.NoError(t, os.WriteFile(path, bz, 0o600))
	return path
}

func runVerify(t *testing.T, path string) (VerifyResult, error) {
	t.Helper()
	var out bytes.Buffer
	VerifyCmd.SetOut(&out)
	requestFile = path
	if err := verify(VerifyCmd, nil); err != nil {
		return VerifyResult{}, err
	}
	var res VerifyResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	return res, nil
}

func savedSnapshotSize(t *testing.T) int {
	t.Helper()
	var size int
	err := withSnapshotStore(func(ss *store.SnapshotStore) error {
		var err error
		size, err = ss.Size()
		return err
	})
	require.NoError(t, err)
	return size
}

func TestVerify(t *testing.T) {
	setupTestConfig(t)
	defer clearConfig(t)

	req := testRequest(t, 3)
	res, err := runVerify(t, writeRequest(t, req))
	require.NoError(t, err)
	assert.Equal(t, VerifyResult{Valid: true, Pairs: 3, CachedPairings: 3}, res)
	assert.Equal(t, 3, savedSnapshotSize(t))

	// a signature over other messages fails but the pairings are reused
	other := testRequest(t, 4)
	req.Signature = other.Signature
	res, err = runVerify(t, writeRequest(t, req))
	require.NoError(t, err)
	assert.Equal(t, VerifyResult{Valid: false, Pairs: 3, CachedPairings: 3}, res)
}

func TestVerifyFromStdin(t *testing.T) {
	setupTestConfig(t)
	defer clearConfig(t)

	bz, err := json.Marshal(testRequest(t, 2))
	require.NoError(t, err)
	VerifyCmd.SetIn(bytes.NewReader(bz))
	defer VerifyCmd.SetIn(nil)

	res, err := runVerify(t, "-")
	require.NoError(t, err)
	assert.True(t, res.Valid)
}

func TestVerifyRejectsMalformedRequests(t *testing.T) {
	setupTestConfig(t)
	defer clearConfig(t)

	_, err := runVerify(t, "")
	assert.Error(t, err)

	mismatch := testRequest(t, 2)
	mismatch.Messages = mismatch.Messages[:1]
	_, err = runVerify(t, writeRequest(t, mismatch))
	assert.ErrorAs(t, err, &blscache.ErrLengthMismatch{})

	badKey := testRequest(t, 1)
	badKey.PublicKeys[0] = badKey.PublicKeys[0][:20]
	_, err = runVerify(t, writeRequest(t, badKey))
	assert.ErrorIs(t, err, bls12381.ErrDecode)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"signature": "zz"}`), 0o600))
	_, err = runVerify(t, path)
	assert.Error(t, err)
}

func TestSnapshotExportImport(t *testing.T) {
	setupTestConfig(t)
	defer clearConfig(t)

	_, err := runVerify(t, writeRequest(t, testRequest(t, 3)))
	require.NoError(t, err)

	snapshotFile = filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, snapshotExport(nil, nil))

	var exported []SnapshotEntry
	bz, err := os.ReadFile(snapshotFile)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(bz, &exported))
	require.Len(t, exported, 3)

	require.NoError(t, snapshotClear(nil, nil))
	assert.Equal(t, 0, savedSnapshotSize(t))

	// a smaller cache keeps the most recently used entries
	config.BLSCache.Size = 2
	require.NoError(t, snapshotImport(nil, nil))

	var saved []blscache.Entry
	require.NoError(t, withSnapshotStore(func(ss *store.SnapshotStore) error {
		saved, err = ss.LoadSnapshot()
		return err
	}))
	require.Len(t, saved, 2)
	for i, e := range saved {
		assert.Equal(t, []byte(exported[i+1].Key), e.Key)
		assert.Equal(t, []byte(exported[i+1].Value), e.Value)
	}

	var out bytes.Buffer
	SnapshotCmd.SetOut(&out)
	showEntries = true
	defer func() { showEntries = false }()
	require.NoError(t, snapshotShow(SnapshotCmd, nil))
	assert.Contains(t, out.String(), "entries:  2")
	assert.Contains(t, out.String(), exported[2].Key.String())
}

func TestSnapshotImportRejectsCorruptEntry(t *testing.T) {
	setupTestConfig(t)
	defer clearConfig(t)

	entries := []SnapshotEntry{{
		Key:   bytes.Repeat([]byte{1}, blscache.KeySize),
		Value: bytes.Repeat([]byte{2}, bls12381.GTElementSize),
	}}
	bz, err := json.Marshal(entries)
	require.NoError(t, err)
	snapshotFile = filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(snapshotFile, bz, 0o600))

	err = snapshotImport(nil, nil)
	assert.ErrorAs(t, err, &blscache.ErrFormat{})
	assert.Equal(t, 0, savedSnapshotSize(t))
}

func TestBench(t *testing.T) {
	setupTestConfig(t)
	defer clearConfig(t)

	benchPairs, benchRounds = 3, 2
	var out bytes.Buffer
	BenchCmd.SetOut(&out)
	require.NoError(t, bench(BenchCmd, nil))

	var res BenchResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, 3, res.Pairs)
	assert.Len(t, res.WarmCache, 2)
	assert.Equal(t, 3, savedSnapshotSize(t))
}

func TestInitFiles(t *testing.T) {
	setupTestConfig(t)
	defer clearConfig(t)

	require.NoError(t, initFiles(nil, nil))
	assert.DirExists(t, config.SnapshotDBFile())
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	VersionCmd.SetOut(&out)
	VersionCmd.Run(VersionCmd, nil)
	assert.Equal(t, version.SemVer+"\n", out.String())
}

func TestHexBytes(t *testing.T) {
	bz, err := json.Marshal(HexBytes{0xab, 0x01})
	require.NoError(t, err)
	assert.Equal(t, `"AB01"`, string(bz))

	var decoded HexBytes
	require.NoError(t, json.Unmarshal([]byte(`"0xab01"`), &decoded))
	assert.Equal(t, HexBytes{0xab, 0x01}, decoded)

	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &decoded))
}
