package protocol

// MemoryBank selects an ISO 18000-6C tag memory region.
type MemoryBank byte

const (
	MemoryBankReserved MemoryBank = 0x00
	MemoryBankEPC      MemoryBank = 0x01
	MemoryBankTID      MemoryBank = 0x02
	MemoryBankUser     MemoryBank = 0x03
)

// LockMemoryBank selects the region a lock/unlock action targets. A
// superset of MemoryBank: it additionally covers the access and kill
// password regions, which are lockable but not directly readable as a
// MemoryBank.
type LockMemoryBank byte

const (
	LockMemoryBankPassword LockMemoryBank = 0x00
	LockMemoryBankEPC      LockMemoryBank = 0x01
	LockMemoryBankTID      LockMemoryBank = 0x02
	LockMemoryBankUser     LockMemoryBank = 0x03
	LockMemoryBankKillPwd  LockMemoryBank = 0x04
	LockMemoryBankAccessPwd LockMemoryBank = 0x05
)

// LockAction selects what a lock command does to the targeted region.
type LockAction byte

const (
	LockActionUnlock       LockAction = 0x00
	LockActionLock         LockAction = 0x01
	LockActionPermaUnlock  LockAction = 0x02
	LockActionPermaLock    LockAction = 0x03
)

// WorkMode selects how the reader triggers inventory cycles.
type WorkMode byte

const (
	WorkModeAnswerMode  WorkMode = 0x00
	WorkModeActiveMode  WorkMode = 0x01
	WorkModeTriggerMode WorkMode = 0x02
)

// StopAfter selects whether a streaming command's termination condition
// is a tag count or an elapsed duration.
type StopAfter byte

const (
	StopAfterTime   StopAfter = 0x00
	StopAfterNumber StopAfter = 0x01
)

// BaudRate is a closed set of serial baud rates with an integer mapping
// (spec.md §4.3).
type BaudRate byte

const (
	Baud9600   BaudRate = 0x00
	Baud19200  BaudRate = 0x01
	Baud38400  BaudRate = 0x02
	Baud57600  BaudRate = 0x03
	Baud115200 BaudRate = 0x04
)

var baudToInt = map[BaudRate]int{
	Baud9600:   9600,
	Baud19200:  19200,
	Baud38400:  38400,
	Baud57600:  57600,
	Baud115200: 115200,
}

// ToInt returns the numeric baud rate this enum value represents.
func (b BaudRate) ToInt() int { return baudToInt[b] }

// BaudRateFromInt finds the enum value for a numeric baud rate, if any.
func BaudRateFromInt(n int) (BaudRate, bool) {
	for b, v := range baudToInt {
		if v == n {
			return b, true
		}
	}
	return 0, false
}

// Session is an ISO 18000-6C anticollision session selector.
type Session byte

const (
	Session0 Session = 0x00
	Session1 Session = 0x01
	Session2 Session = 0x02
	Session3 Session = 0x03
)

// RfidProtocol selects the air-interface protocol family.
type RfidProtocol byte

const (
	RfidProtocolISO18000_6B RfidProtocol = 0x00
	RfidProtocolISO18000_6C RfidProtocol = 0x01
)

// OutputInterface selects how the reader exposes decoded tag output.
type OutputInterface byte

const (
	OutputInterfaceRS232   OutputInterface = 0x00
	OutputInterfaceRS485   OutputInterface = 0x01
	OutputInterfaceWiegand OutputInterface = 0x02
	OutputInterfaceUSB     OutputInterface = 0x03
	OutputInterfaceNetwork OutputInterface = 0x04
)

// WiegandProtocol selects the Wiegand output format.
type WiegandProtocol byte

const (
	WiegandProtocolWG26 WiegandProtocol = 0x00
	WiegandProtocolWG34 WiegandProtocol = 0x01
)

// WiegandByteFirstType selects Wiegand output byte order.
type WiegandByteFirstType byte

const (
	WiegandLowByteFirst  WiegandByteFirstType = 0x00
	WiegandHighByteFirst WiegandByteFirstType = 0x01
)

// CommandOption is the GET/SET selector byte used by compound get/set
// opcodes (spec.md §4.3 — "exact values as per firmware").
type CommandOption byte

const (
	CommandOptionGet CommandOption = 0x01
	CommandOptionSet CommandOption = 0x02
)
