package response

import (
	"fmt"

	"github.com/tagfleet/rfid-reader/pkg/protocol"
	"github.com/tagfleet/rfid-reader/pkg/settings"
)

// CurrentTemperature is the decoded body of GET_CURRENT_TEMPERATURE.
type CurrentTemperature struct {
	Response
	Celsius int8
}

// ParseCurrentTemperature decodes a GET_CURRENT_TEMPERATURE response.
func ParseCurrentTemperature(r Response) (CurrentTemperature, error) {
	if len(r.Body) < 1 {
		return CurrentTemperature{Response: r}, fmt.Errorf("response: temperature body empty")
	}
	return CurrentTemperature{Response: r, Celsius: int8(r.Body[0])}, nil
}

// AntennaPower is the decoded body of SET_GET_ANTENNA_POWER's GET branch:
// an overall enable flag plus one power byte per antenna (1..8).
type AntennaPower struct {
	Response
	Enabled bool
	Power   [8]byte
}

const antennaPowerWireLen = 1 + 8

// ParseAntennaPower decodes an antenna-power GET response.
func ParseAntennaPower(r Response) (AntennaPower, error) {
	if len(r.Body) < antennaPowerWireLen {
		return AntennaPower{Response: r}, fmt.Errorf("response: antenna power body too short: %d < %d", len(r.Body), antennaPowerWireLen)
	}
	a := AntennaPower{Response: r, Enabled: r.Body[0] != 0}
	copy(a.Power[:], r.Body[1:9])
	return a, nil
}

// RfidProtocol is the decoded body of SET_GET_RFID_PROTOCOL's GET branch.
type RfidProtocol struct {
	Response
	Protocol protocol.RfidProtocol
}

// ParseRfidProtocol decodes an RFID-protocol GET response.
func ParseRfidProtocol(r Response) (RfidProtocol, error) {
	if len(r.Body) < 1 {
		return RfidProtocol{Response: r}, fmt.Errorf("response: rfid protocol body empty")
	}
	return RfidProtocol{Response: r, Protocol: protocol.RfidProtocol(r.Body[0])}, nil
}

// OutputControl is the decoded body of SET_GET_OUTPUT_PARAMETERS's GET
// branch.
type OutputControl struct {
	Response
	Control settings.OutputControl
}

// ParseOutputControl decodes an output-control GET response.
func ParseOutputControl(r Response) (OutputControl, error) {
	c, err := settings.DecodeOutputControl(r.Body)
	if err != nil {
		return OutputControl{Response: r}, err
	}
	return OutputControl{Response: r, Control: c}, nil
}

// MaskInventoryPermission is the decoded body of SET_GET_PERMISSION's GET
// branch.
type MaskInventoryPermission struct {
	Response
	Permission settings.MaskInventoryPermission
}

// ParseMaskInventoryPermission decodes a mask-inventory-permission GET
// response.
func ParseMaskInventoryPermission(r Response) (MaskInventoryPermission, error) {
	p, err := settings.DecodeMaskInventoryPermission(r.Body)
	if err != nil {
		return MaskInventoryPermission{Response: r}, err
	}
	return MaskInventoryPermission{Response: r, Permission: p}, nil
}

// InventoryRange is the decoded body of INVENTORY_RANGE's GET branch
// ("analytics purpose" per the original driver).
type InventoryRange struct {
	Response
	StartAddress byte
	Length       byte
}

const inventoryRangeWireLen = 1 + 1 + 2 // + 2 reserved

// ParseInventoryRange decodes an inventory-range GET response.
func ParseInventoryRange(r Response) (InventoryRange, error) {
	if len(r.Body) < inventoryRangeWireLen {
		return InventoryRange{Response: r}, fmt.Errorf("response: inventory range body too short: %d < %d", len(r.Body), inventoryRangeWireLen)
	}
	return InventoryRange{Response: r, StartAddress: r.Body[0], Length: r.Body[1]}, nil
}
