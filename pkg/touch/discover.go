package touch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Device name fragments that identify a touchscreen. ADS7846 is the
// controller on most resistive SPI panels.
var touchNameFragments = []string{"touch", "ads7846", "ft5406", "stmpe"}

// FindDevice scans /sys/class/input for an event node whose device name
// looks like a touchscreen and returns its /dev/input path.
func FindDevice() (string, error) {
	return findDevice("/sys/class/input", "/dev/input")
}

func findDevice(sysfsDir, devDir string) (string, error) {
	entries, err := os.ReadDir(sysfsDir)
	if err != nil {
		return "", fmt.Errorf("scan input devices: %w", err)
	}

	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), "event") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(sysfsDir, entry.Name(), "device", "name"))
		if err != nil {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(string(raw)))
		for _, fragment := range touchNameFragments {
			if strings.Contains(name, fragment) {
				return filepath.Join(devDir, entry.Name()), nil
			}
		}
	}
	return "", fmt.Errorf("no touchscreen found under %s", sysfsDir)
}
