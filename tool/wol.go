package tool

import (
	"fmt"
	"net"
)

// Wake-on-LAN: discard port, limited broadcast. Enigma2 boxes listen for
// magic packets even in deep standby.
const (
	wolPort      = 9
	wolBroadcast = "255.255.255.255"
)

// MagicPacket builds the 102-byte wake-on-LAN frame for a MAC address:
// six 0xFF bytes followed by the MAC repeated sixteen times.
func MagicPacket(mac string) ([]byte, error) {
	hw, err := net.ParseMAC(mac)
	if err != nil {
		return nil, fmt.Errorf("invalid MAC address %q: %v", mac, err)
	}
	if len(hw) != 6 {
		return nil, fmt.Errorf("MAC address %q is not 48-bit", mac)
	}

	packet := make([]byte, 0, 6+16*6)
	for i := 0; i < 6; i++ {
		packet = append(packet, 0xFF)
	}
	for i := 0; i < 16; i++ {
		packet = append(packet, hw...)
	}
	return packet, nil
}

// SendMagicPacket broadcasts a wake-on-LAN magic packet for the MAC.
func SendMagicPacket(mac string) error {
	packet, err := MagicPacket(mac)
	if err != nil {
		return err
	}

	addr := &net.UDPAddr{IP: net.ParseIP(wolBroadcast), Port: wolPort}
	c, err := net.DialUDP("udp4", nil, addr)
	if err != nil {
		return fmt.Errorf("failed to open WOL socket: %v", err)
	}
	defer c.Close()

	if _, err := c.Write(packet); err != nil {
		return fmt.Errorf("failed to send WOL packet to %s: %v", mac, err)
	}
	DefaultLogger.Debugf("Sent WOL magic packet to %s", mac)
	return nil
}
