package protocol

// Opcode is a 16-bit command/response identifier (spec.md §4.3).
type Opcode uint16

const (
	ModuleInit              Opcode = 0x0070
	Reboot                  Opcode = 0x0068
	GetDeviceInfo           Opcode = 0x0021
	SetPower                Opcode = 0x002F
	ReleaseCloseRelay       Opcode = 0x0056
	SetGetRfidProtocol      Opcode = 0x0022
	GetAllParam             Opcode = 0x0061
	SetAllParam             Opcode = 0x0062
	SetGetNetwork           Opcode = 0x0027
	SetGetRemoteNetwork     Opcode = 0x0028
	SetMaxTemperature       Opcode = 0x0037
	GetCurrentTemperature   Opcode = 0x0038
	SetGetAntennaPower      Opcode = 0x0039
	SelectMask              Opcode = 0x000C
	ReadISOTag              Opcode = 0x0010
	WriteISOTag             Opcode = 0x0011
	LockISOTag              Opcode = 0x0013
	KillISOTag              Opcode = 0x0014
	SetGetOutputParameters  Opcode = 0x0045
	SetGetPermission        Opcode = 0x004A
	InventoryISOContinue    Opcode = 0x0001
	InventoryStop           Opcode = 0x0002
	InventoryRange          Opcode = 0x004C
)

var opcodeNames = map[Opcode]string{
	ModuleInit:             "MODULE_INIT",
	Reboot:                 "REBOOT",
	GetDeviceInfo:          "GET_DEVICE_INFO",
	SetPower:               "SET_POWER",
	ReleaseCloseRelay:      "RELEASE_CLOSE_RELAY",
	SetGetRfidProtocol:     "SET_GET_RFID_PROTOCOL",
	GetAllParam:            "GET_ALL_PARAM",
	SetAllParam:            "SET_ALL_PARAM",
	SetGetNetwork:          "SET_GET_NETWORK",
	SetGetRemoteNetwork:    "SET_GET_REMOTE_NETWORK",
	SetMaxTemperature:      "SET_MAX_TEMPERATURE",
	GetCurrentTemperature:  "GET_CURRENT_TEMPERATURE",
	SetGetAntennaPower:     "SET_GET_ANTENNA_POWER",
	SelectMask:             "SELECT_MASK",
	ReadISOTag:             "READ_ISO_TAG",
	WriteISOTag:            "WRITE_ISO_TAG",
	LockISOTag:             "LOCK_ISO_TAG",
	KillISOTag:             "KILL_ISO_TAG",
	SetGetOutputParameters: "SET_GET_OUTPUT_PARAMETERS",
	SetGetPermission:       "SET_GET_PERMISSION",
	InventoryISOContinue:   "INVENTORY_ISO_CONTINUE",
	InventoryStop:          "INVENTORY_STOP",
	InventoryRange:         "INVENTORY_RANGE",
}

func (o Opcode) String() string {
	if name, ok := opcodeNames[o]; ok {
		return name
	}
	return "UNKNOWN_OPCODE"
}
