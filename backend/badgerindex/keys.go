package badgerindex

import "encoding/binary"

// Key prefixes for the two record kinds held in the index.
const (
	docPrefix  = "tlddoc"
	taskPrefix = "tldtask"
)

// makeDocKey generates the key for a document entry.
func makeDocKey(path string) []byte {
	return []byte(docPrefix + ":" + path)
}

// makeTaskKey generates a composite key for a task record.
// Format: prefix:path:line, with the line in BigEndian so tasks of one
// document iterate in line order.
func makeTaskKey(path string, line int) []byte {
	prefix := taskPrefix + ":" + path + ":"
	buf := make([]byte, len(prefix)+4)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint32(buf[offset:], uint32(line))
	return buf
}

// makeTaskPathPrefix generates the key prefix covering every task record of
// one document, for range deletion and per-document scans.
func makeTaskPathPrefix(path string) []byte {
	return []byte(taskPrefix + ":" + path + ":")
}
