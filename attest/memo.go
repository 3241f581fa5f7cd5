package attest

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// memoEntry matches the exact external memo transport shape: a single
// "Memo" object keyed by MemoType/MemoData, both uppercase hex.
type memoEntry struct {
	Memo struct {
		MemoType string `json:"MemoType"`
		MemoData string `json:"MemoData"`
	} `json:"Memo"`
}

func memo(memoType, value string) memoEntry {
	var e memoEntry
	e.Memo.MemoType = toUpperHex(memoType)
	e.Memo.MemoData = toUpperHex(value)
	return e
}

func toUpperHex(s string) string {
	return fmt.Sprintf("%X", []byte(s))
}

// EncodeMemos renders p as the optional external memo transport: one
// entry per field, sorted alphabetically by the MemoType key, each
// field's name and value hex-encoded uppercase. This is a pure,
// additional encoding — never an Emitter output mode.
func EncodeMemos(p Payload) ([]byte, error) {
	from := ""
	if p.TransitionRange.From != nil {
		from = *p.TransitionRange.From
	}

	fields := map[string]string{
		"registrum:version":          p.RegistrumVersion,
		"registrum:snapshot_version": strconv.Itoa(p.SnapshotVersion),
		"registrum:snapshot_hash":    p.SnapshotHash,
		"registrum:registry_hash":    p.RegistryHash,
		"registrum:mode":             string(p.Mode),
		"registrum:parity":           p.ParityStatus,
		"registrum:range":            from + "-" + p.TransitionRange.To,
		"registrum:state_count":      strconv.Itoa(p.StateCount),
		"registrum:ordering_max":     strconv.Itoa(p.OrderingMax),
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]memoEntry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, memo(k, fields[k]))
	}

	return json.Marshal(entries)
}

// decodeHex is an unexported helper for tests that need to verify
// round-trip decodability of the memo transport.
func decodeHex(s string) (string, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
