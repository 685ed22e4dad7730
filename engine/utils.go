package engine

import (
	"strings"

	"github.com/c2h5oh/datasize"
)

// parseSize reads a human size such as "4MB" or "512 kb". Empty, "0" and
// "unlimited" mean no limit.
func parseSize(s string) (datasize.ByteSize, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "unlimited", "0", "":
		return 0, nil
	}
	var v datasize.ByteSize
	if err := v.UnmarshalText([]byte(s)); err != nil {
		return 0, err
	}
	return v, nil
}
