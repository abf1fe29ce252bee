// cmd/gantryctl/main.go
package main

import (
	"log"
	"os"
	"sort"
	"strconv"

	"github.com/abiosoft/ishell/v2"

	"github.com/tamzrod/gantry-hal/internal/config"
	"github.com/tamzrod/gantry-hal/internal/link"
	"github.com/tamzrod/gantry-hal/internal/motor"
	"github.com/tamzrod/gantry-hal/internal/probe"
)

// axis is one opened controller plus its configuration.
type axis struct {
	cfg config.AxisConfig
	m   motor.Motor
}

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		log.Fatalf("environment parse failed: %v", err)
	}

	cfgPath := env.ConfigPath
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	config.ApplyEnv(cfg, env)

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	link.EnableTrace(env.Trace)

	// --------------------
	// Open every axis
	// --------------------

	axes := make(map[string]*axis)
	for _, a := range cfg.Gantry.Axes {
		m, closeMotor, err := motor.Build(a)
		if err != nil {
			log.Printf("axis open failed (axis=%s port=%s): %v", a.ID, a.Port, err)
			continue
		}
		defer closeMotor()

		log.Printf("axis ready (axis=%s variant=%s port=%s)", a.ID, m.Variant(), a.Port)
		axes[a.ID] = &axis{cfg: a, m: m}
	}
	if len(axes) == 0 {
		log.Fatal("no axis could be opened")
	}

	shell := ishell.New()
	shell.Println("gantry control shell")
	registerCommands(shell, cfg, axes)

	// one-shot mode: gantryctl <config.yaml> <command> [args...]
	if len(os.Args) > 2 {
		if err := shell.Process(os.Args[2:]...); err != nil {
			log.Printf("command failed: %v", err)
		}
		return
	}

	shell.Run()
}

func registerCommands(shell *ishell.Shell, cfg *config.Config, axes map[string]*axis) {
	// pick resolves the axis named by the first argument.
	pick := func(c *ishell.Context, nargs int) *axis {
		if len(c.Args) < nargs {
			c.Err(errUsage(c.Cmd.Help))
			return nil
		}
		ac, ok := cfg.Axis(c.Args[0])
		if !ok {
			c.Printf("no such axis %q\n", c.Args[0])
			return nil
		}
		a, ok := axes[ac.ID]
		if !ok {
			c.Printf("axis %s is offline\n", ac.ID)
			return nil
		}
		return a
	}

	intArg := func(c *ishell.Context, i int) (int, bool) {
		v, err := strconv.Atoi(c.Args[i])
		if err != nil {
			c.Printf("not an integer: %q\n", c.Args[i])
			return 0, false
		}
		return v, true
	}

	shell.AddCmd(&ishell.Cmd{
		Name: "ports",
		Help: "ports",
		Func: func(c *ishell.Context) {
			ports, err := link.Ports()
			if err != nil {
				c.Err(err)
				return
			}
			for _, p := range ports {
				c.Println(p)
			}
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "axes",
		Help: "axes",
		Func: func(c *ishell.Context) {
			ids := make([]string, 0, len(axes))
			for id := range axes {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			for _, id := range ids {
				a := axes[id]
				c.Printf("%s\t%s\t%s@%d\n", id, a.m.Variant(), a.cfg.Port, a.cfg.Baud)
			}
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "probe",
		Help: "probe <axis>",
		Func: func(c *ishell.Context) {
			a := pick(c, 1)
			if a == nil {
				return
			}
			res := probe.Once(a.cfg.ID, a.m)
			if res.Err != nil {
				c.Err(res.Err)
				return
			}
			c.Printf("%s %s serial=%s version=%s\n", res.AxisID, res.Identity.Type, res.Identity.Serial, res.Identity.Version)
			c.Printf("%+v\n", res.State)
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "pos",
		Help: "pos <axis>",
		Func: func(c *ishell.Context) {
			a := pick(c, 1)
			if a == nil {
				return
			}
			p, err := a.m.Position()
			if err != nil {
				c.Err(err)
				return
			}
			c.Println(p)
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "move",
		Help: "move <axis> <position> [rel]",
		Func: func(c *ishell.Context) {
			a := pick(c, 2)
			if a == nil {
				return
			}
			v, ok := intArg(c, 1)
			if !ok {
				return
			}
			relative := len(c.Args) > 2 && c.Args[2] == "rel"
			if err := a.m.MoveTo(v, relative); err != nil {
				c.Err(err)
			}
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "velocity",
		Help: "velocity <axis> [rpm]",
		Func: func(c *ishell.Context) {
			a := pick(c, 1)
			if a == nil {
				return
			}
			if len(c.Args) == 1 {
				v, err := a.m.Velocity()
				if err != nil {
					c.Err(err)
					return
				}
				c.Println(v)
				return
			}
			v, ok := intArg(c, 1)
			if !ok {
				return
			}
			if err := a.m.SetVelocity(v); err != nil {
				c.Err(err)
			}
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "limits",
		Help: "limits <axis>",
		Func: func(c *ishell.Context) {
			a := pick(c, 1)
			if a == nil {
				return
			}
			lo, err := a.m.LowerLimitSwitch()
			if err != nil {
				c.Err(err)
				return
			}
			hi, err := a.m.UpperLimitSwitch()
			if err != nil {
				c.Err(err)
				return
			}
			c.Printf("lower=%v upper=%v\n", lo, hi)
		},
	})

	for _, act := range []struct {
		name string
		run  func(motor.Motor) error
	}{
		{"enable", motor.Motor.Enable},
		{"disable", motor.Motor.Disable},
	} {
		act := act
		shell.AddCmd(&ishell.Cmd{
			Name: act.name,
			Help: act.name + " <axis>",
			Func: func(c *ishell.Context) {
				a := pick(c, 1)
				if a == nil {
					return
				}
				if err := act.run(a.m); err != nil {
					c.Err(err)
				}
			},
		})
	}

	shell.AddCmd(&ishell.Cmd{
		Name: "home",
		Help: "home <axis> [wait]",
		Func: func(c *ishell.Context) {
			a := pick(c, 1)
			if a == nil {
				return
			}
			if len(c.Args) < 2 || c.Args[1] != "wait" {
				if err := a.m.StartHoming(); err != nil {
					c.Err(err)
				}
				return
			}
			if err := motor.Home(a.m, a.cfg.HomingInterval(), a.cfg.HomingTimeout()); err != nil {
				c.Err(err)
				return
			}
			c.Println("homed")
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "status",
		Help: "status <axis> [config|special]",
		Func: func(c *ishell.Context) {
			a := pick(c, 1)
			if a == nil {
				return
			}
			read := a.m.OperatingStatus
			if len(c.Args) > 1 {
				switch c.Args[1] {
				case "config":
					read = a.m.ConfigStatus
				case "special":
					sc, ok := a.m.(motor.SpecialConfigReader)
					if !ok {
						c.Err(motor.ErrUnsupported)
						return
					}
					read = sc.SpecialConfig
				}
			}
			r, err := read()
			if err != nil {
				c.Err(err)
				return
			}
			for _, n := range r.Names() {
				c.Printf("%-26s %d\n", n, r.Uint(n))
			}
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "param",
		Help: "param <axis> [name]",
		Func: func(c *ishell.Context) {
			a := pick(c, 1)
			if a == nil {
				return
			}
			pr, ok := a.m.(motor.ParameterReader)
			if !ok {
				c.Err(motor.ErrUnsupported)
				return
			}
			names := motor.Parameters()
			if len(c.Args) > 1 {
				names = []motor.Parameter{motor.Parameter(c.Args[1])}
			}
			for _, p := range names {
				v, err := pr.Parameter(p)
				if err != nil {
					c.Printf("%-20s error: %v\n", p, err)
					continue
				}
				c.Printf("%-20s %g\n", p, v)
			}
		},
	})
}

type errUsage string

func (e errUsage) Error() string { return "usage: " + string(e) }
