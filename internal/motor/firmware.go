// internal/motor/firmware.go
package motor

import (
	"fmt"
	"regexp"

	"github.com/Masterminds/semver"
)

// VER replies may lead with a model number ("MCBL2805 V3.2").
var (
	markedToken = regexp.MustCompile(`(?i)\bv(?:ersion)?\s*([0-9]+(?:\.[0-9]+){0,2})`)
	dottedToken = regexp.MustCompile(`[0-9]+(?:\.[0-9]+){1,2}`)
	numberToken = regexp.MustCompile(`[0-9]+`)
)

// versionToken picks the number after a V/Version marker, else the last
// dotted number, else the first number.
func versionToken(reply string) string {
	if m := markedToken.FindStringSubmatch(reply); m != nil {
		return m[1]
	}
	if all := dottedToken.FindAllString(reply, -1); len(all) > 0 {
		return all[len(all)-1]
	}
	return numberToken.FindString(reply)
}

// ParseFirmware extracts the firmware version from a VER reply.
func ParseFirmware(reply string) (*semver.Version, error) {
	tok := versionToken(reply)
	if tok == "" {
		return nil, fmt.Errorf("motor: no version in %q", reply)
	}
	v, err := semver.NewVersion(tok)
	if err != nil {
		return nil, fmt.Errorf("motor: version %q: %w", reply, err)
	}
	return v, nil
}

// CheckFirmware reads the firmware version of m and tests it against
// constraint. An empty constraint accepts anything without querying.
func CheckFirmware(m Motor, constraint string) error {
	if constraint == "" {
		return nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("motor: firmware constraint %q: %w", constraint, err)
	}

	v, err := m.Firmware()
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return &FirmwareError{Version: v.String(), Constraint: constraint}
	}
	return nil
}
