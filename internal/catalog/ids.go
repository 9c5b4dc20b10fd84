package catalog

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/bits"
)

const base62 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// ItemID derives the stable id for a top-level item from its collection id
// and directory name: sha256, truncated to 119 bits, rendered as 20 base62
// digits. The same inputs produce the same id on every scan, so user state
// keyed by item id survives rebuilds.
func ItemID(collectionID, name string) string {
	sum := sha256.Sum256([]byte(collectionID + ":" + name))
	hi := binary.BigEndian.Uint64(sum[0:8])
	lo := binary.BigEndian.Uint64(sum[8:16])
	// Drop 9 bits so 20 base62 digits always cover the value.
	lo = lo>>9 | hi<<55
	hi >>= 9
	var b [20]byte
	for i := range b {
		var rem uint64
		hi, lo, rem = divmod62(hi, lo)
		b[i] = base62[rem]
	}
	return string(b[:])
}

func divmod62(hi, lo uint64) (qhi, qlo, rem uint64) {
	qhi = hi / 62
	qlo, rem = bits.Div64(hi%62, lo, 62)
	return qhi, qlo, rem
}

// SeasonID returns the id of a season within a show.
func SeasonID(showID string, season int) string {
	return fmt.Sprintf("%s:S%02d", showID, season)
}

// EpisodeID returns the id of an episode within a season.
func EpisodeID(seasonID string, episode int) string {
	return fmt.Sprintf("%s:E%02d", seasonID, episode)
}
