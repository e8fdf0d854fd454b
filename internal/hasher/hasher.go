package hasher

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/AnyUserName/jpegcore-cli/internal/rle"
	"github.com/cespare/xxhash/v2"
)

// ContentHash computes the xxHash64 of data and returns a hex string
// truncated to hexLen (0 keeps all 16 chars).
func ContentHash(data []byte, hexLen int) string {
	return truncHex(xxhash.Sum64(data), hexLen)
}

// TokenDigest hashes a plane's token lists in order. Every token is fed
// as two little-endian int32s and every block is closed by its length,
// so moving a token across a block boundary changes the digest.
func TokenDigest(blocks [][]rle.Token, hexLen int) string {
	h := xxhash.New()
	var buf [8]byte
	for _, tokens := range blocks {
		for _, t := range tokens {
			binary.LittleEndian.PutUint32(buf[0:4], uint32(t.Value))
			binary.LittleEndian.PutUint32(buf[4:8], uint32(t.Run))
			h.Write(buf[:])
		}
		binary.LittleEndian.PutUint32(buf[0:4], uint32(len(tokens)))
		h.Write(buf[0:4])
	}
	return truncHex(h.Sum64(), hexLen)
}

func truncHex(v uint64, hexLen int) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	full := hex.EncodeToString(b[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
