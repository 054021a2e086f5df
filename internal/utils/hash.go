package utils

import (
	"fmt"
	"hash/fnv"
)

func HashStringToUint64(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// CallSID derives a stable Twilio-style call SID from seed.
func CallSID(seed string) string {
	return fmt.Sprintf("CA%016x", HashStringToUint64(seed))
}

// DigitCode derives a zero-padded numeric code of n digits from seed.
func DigitCode(seed string, n int) string {
	mod := uint64(1)
	for i := 0; i < n; i++ {
		mod *= 10
	}
	return fmt.Sprintf("%0*d", n, HashStringToUint64(seed)%mod)
}
