package commands

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// HexBytes is a byte slice encoded as uppercase hex in JSON. Either case is
// accepted when decoding.
type HexBytes []byte

func (bz HexBytes) MarshalText() ([]byte, error) {
	return []byte(strings.ToUpper(hex.EncodeToString(bz))), nil
}

func (bz *HexBytes) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(string(text), "0x")
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("invalid hex %q: %w", text, err)
	}
	*bz = decoded
	return nil
}

func (bz HexBytes) String() string {
	return strings.ToUpper(hex.EncodeToString(bz))
}

func toBytes(hbs []HexBytes) [][]byte {
	bzs := make([][]byte, len(hbs))
	for i, hb := range hbs {
		bzs[i] = hb
	}
	return bzs
}
