package protocol

// TagStatus is the per-tag outcome byte carried inside read/write/lock/
// kill tag records (inventory tag records carry none) — distinct from the
// frame-level Status, whose SUCCESS (more frames follow) and
// NO_COUNT_LABEL (the stream has ended) values drive the stream. TagStatus
// reports what happened to this
// specific tag (spec.md GLOSSARY "Memory bank"; original_source
// rfid/read_write.py's tag_status field).
type TagStatus byte

const (
	TagStatusSuccess          TagStatus = 0x00
	TagStatusMismatchCRC      TagStatus = 0x01
	TagStatusInsufficientPower TagStatus = 0x02
	TagStatusNoResponse       TagStatus = 0x03
	TagStatusAccessDenied     TagStatus = 0x04
	TagStatusMemoryOverrun    TagStatus = 0x05
	TagStatusMemoryLocked     TagStatus = 0x06
	TagStatusInsufficientPriv TagStatus = 0x07
)

var tagStatusNames = map[TagStatus]string{
	TagStatusSuccess:           "SUCCESS",
	TagStatusMismatchCRC:       "MISMATCH_CRC",
	TagStatusInsufficientPower: "INSUFFICIENT_POWER",
	TagStatusNoResponse:        "NO_RESPONSE",
	TagStatusAccessDenied:      "ACCESS_DENIED",
	TagStatusMemoryOverrun:     "MEMORY_OVERRUN",
	TagStatusMemoryLocked:      "MEMORY_LOCKED",
	TagStatusInsufficientPriv:  "INSUFFICIENT_PRIVILEGE",
}

func (t TagStatus) String() string {
	if name, ok := tagStatusNames[t]; ok {
		return name
	}
	return "UNKNOWN_TAG_STATUS"
}
