// internal/motor/motor_test.go
package motor

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/tamzrod/gantry-hal/internal/link"
	"github.com/tamzrod/gantry-hal/internal/link/linktest"
	"github.com/tamzrod/gantry-hal/internal/protocol"
)

// newTestMotor detects a motor on a scripted device answering typ to GTYP.
func newTestMotor(typ string, replies map[string]string) (Motor, *linktest.Device, error) {
	dev := linktest.New(replies)
	dev.Set("GTYP", typ)
	m, err := New(protocol.NewCodec(dev))
	return m, dev, err
}

func decodeReason(err error) protocol.Reason {
	var de *protocol.DecodeError
	if errors.As(err, &de) {
		return de.Reason
	}
	return 0
}

func TestFactory(t *testing.T) {
	Convey("a CS type string yields a CS motor", t, func() {
		m, _, err := newTestMotor("CS", nil)
		So(err, ShouldBeNil)
		So(m.Variant(), ShouldEqual, VariantCS)
		So(m, ShouldHaveSameTypeAs, &csMotor{})
	})

	Convey("a CS-BX4 type string yields a CS-BX4 motor", t, func() {
		m, _, err := newTestMotor("CS-BX4", nil)
		So(err, ShouldBeNil)
		So(m.Variant(), ShouldEqual, VariantCSBX4)
		So(m, ShouldHaveSameTypeAs, &bx4Motor{})
	})

	Convey("an empty type string means the device is not responding", t, func() {
		m, dev, err := newTestMotor("", nil)
		So(m, ShouldBeNil)
		So(errors.Is(err, ErrNotResponding), ShouldBeTrue)

		Convey("and New leaves the link to its caller", func() {
			So(dev.Closed, ShouldBeFalse)
		})
	})

	Convey("an unmapped type string is reported with its text", t, func() {
		_, _, err := newTestMotor("XYZ", nil)
		var ue *UnknownDeviceTypeError
		So(errors.As(err, &ue), ShouldBeTrue)
		So(ue.Type, ShouldEqual, "XYZ")
		So(err.Error(), ShouldContainSubstring, "XYZ")
	})

	Convey("a link failure during detection aborts creation", t, func() {
		dev := linktest.New(nil)
		dev.WriteErr = errors.New("unplugged")
		_, err := New(protocol.NewCodec(dev))
		var le *protocol.LinkError
		So(errors.As(err, &le), ShouldBeTrue)
	})

	Convey("Create rejects an unusable link config before touching hardware", t, func() {
		_, err := Create(link.Config{Port: "/dev/null", Baud: 1234, Timeout: 1})
		var le *protocol.LinkError
		So(errors.As(err, &le), ShouldBeTrue)
		So(le.Op, ShouldEqual, "open")
	})

	Convey("Create closes the link when detection fails", t, func() {
		dev := linktest.New(nil)
		openLink = func(link.Config) (link.Link, error) { return dev, nil }
		Reset(func() { openLink = link.Open })

		cfg := link.Config{Port: "/dev/ttyUSB0", Baud: 9600, Timeout: 1}

		Convey("on a silent device", func() {
			m, err := Create(cfg)
			So(m, ShouldBeNil)
			So(errors.Is(err, ErrNotResponding), ShouldBeTrue)
			So(dev.Closed, ShouldBeTrue)
		})

		Convey("on an unmapped type", func() {
			dev.Set("GTYP", "XYZ")
			_, err := Create(cfg)
			var ue *UnknownDeviceTypeError
			So(errors.As(err, &ue), ShouldBeTrue)
			So(dev.Closed, ShouldBeTrue)
		})

		Convey("and keeps it open on success", func() {
			dev.Set("GTYP", "CS")
			m, err := Create(cfg)
			So(err, ShouldBeNil)
			So(m.Variant(), ShouldEqual, VariantCS)
			So(dev.Closed, ShouldBeFalse)
		})
	})

	Convey("ParseVariant round-trips the variant names", t, func() {
		for _, v := range []Variant{VariantCS, VariantCSBX4} {
			got, err := ParseVariant(v.String())
			So(err, ShouldBeNil)
			So(got, ShouldEqual, v)
		}
	})
}

func TestCommonOperations(t *testing.T) {
	Convey("Given a detected motor", t, func() {
		m, dev, err := newTestMotor("CS-BX4", map[string]string{
			"POS":  "123",
			"GN":   "-50",
			"GV":   "300",
			"GSP":  "5000",
			"GAC":  "30",
			"GDEC": "40",
			"GSER": "0042",
			"VER":  "3.14",
		})
		So(err, ShouldBeNil)

		Convey("reads decode as integers", func() {
			pos, err := m.Position()
			So(err, ShouldBeNil)
			So(pos, ShouldEqual, 123)

			v, _ := m.Velocity()
			So(v, ShouldEqual, -50)
			tv, _ := m.TargetVelocity()
			So(tv, ShouldEqual, 300)
			vl, _ := m.VelocityLimit()
			So(vl, ShouldEqual, 5000)
			al, _ := m.AccelerationLimit()
			So(al, ShouldEqual, 30)
			dl, _ := m.DecelerationLimit()
			So(dl, ShouldEqual, 40)
		})

		Convey("identification is returned verbatim", func() {
			typ, err := m.Type()
			So(err, ShouldBeNil)
			So(typ, ShouldEqual, "CS-BX4")
			s, _ := m.Serial()
			So(s, ShouldEqual, "0042")
			fw, err := m.Firmware()
			So(err, ShouldBeNil)
			So(fw.String(), ShouldEqual, "3.14.0")
		})

		Convey("relative and absolute targets use different mnemonics", func() {
			So(m.SetPositionTarget(100, false), ShouldBeNil)
			So(m.SetPositionTarget(-5, true), ShouldBeNil)
			So(dev.Sent[len(dev.Sent)-2:], ShouldResemble, []string{"LA100", "LR-5"})
		})

		Convey("MoveTo loads the target then starts the move", func() {
			So(m.MoveTo(250, true), ShouldBeNil)
			So(dev.Sent[len(dev.Sent)-2:], ShouldResemble, []string{"LR250", "M"})
		})

		Convey("actions are written without waiting for a reply", func() {
			So(m.Enable(), ShouldBeNil)
			So(m.Disable(), ShouldBeNil)
			So(m.StartHoming(), ShouldBeNil)
			So(m.SetHome(0), ShouldBeNil)
			So(m.SetVelocity(-300), ShouldBeNil)
			So(m.SetVelocityLimit(6000), ShouldBeNil)
			So(m.SetAccelerationLimit(10), ShouldBeNil)
			So(m.SetDecelerationLimit(20), ShouldBeNil)
			So(dev.Sent[1:], ShouldResemble, []string{
				"EN", "DI", "GOHOSEQ", "HO0", "V-300", "SP6000", "AC10", "DEC20",
			})
		})

		Convey("a garbled reply is a decode failure, not a zero", func() {
			dev.Set("POS", "12#4")
			_, err := m.Position()
			So(decodeReason(err), ShouldEqual, protocol.ReasonMalformed)
		})

		Convey("a write failure on an action is reported", func() {
			dev.WriteErr = errors.New("unplugged")
			err := m.Enable()
			var le *protocol.LinkError
			So(errors.As(err, &le), ShouldBeTrue)
		})

		Convey("Close releases the link", func() {
			So(m.Close(), ShouldBeNil)
			So(dev.Closed, ShouldBeTrue)
		})
	})
}
