package utils

import (
	"fmt"

	"github.com/notargets/gocca"
)

// CreateDevice acquires a compute device, preferring parallel backends.
// It tries OpenMP, then CUDA, then falls back to Serial.
func CreateDevice() *gocca.OCCADevice {
	backends := []string{
		`{"mode": "OpenMP"}`,
		`{"mode": "CUDA", "device_id": 0}`,
		`{"mode": "Serial"}`,
	}

	for _, props := range backends {
		device, err := gocca.NewDevice(props)
		if err == nil {
			fmt.Printf("OCCA device mode   = %s\n", device.Mode())
			return device
		}
	}

	panic("failed to create any OCCA device (Serial should always be available)")
}
