package version

const (
	// SemVer is used as the fallback version of the blscache tool
	// when not using git describe. It uses semantic versioning format.
	SemVer = "0.1.0-dev"

	// Scheme is the BLS signature scheme whose pairings are cached.
	Scheme = "BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_AUG_"

	// SnapshotFormat versions the persisted snapshot layout: the key
	// encoding and the entry value (cache key followed by the GT element).
	SnapshotFormat uint64 = 1
)

// GitCommitHash uses git rev-parse HEAD to find commit hash which is helpful
// for the engineering team when working with the blscache binary. See Makefile.
var GitCommitHash = ""
