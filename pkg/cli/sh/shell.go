package sh

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/abiosoft/ishell"
	"github.com/golang/glog"

	"github.com/robotalks/servo42.go/pkg/comm"
	"github.com/robotalks/servo42.go/pkg/motor"
	"github.com/robotalks/servo42.go/pkg/port"
	"github.com/robotalks/servo42.go/pkg/servo42"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool
	DryRun      bool
	AutoOpen    bool

	Shell  *ishell.Shell
	Config *port.Config
	Conn   *Conn
}

// Conn is an opened port with a running Link.
type Conn struct {
	Ctx    context.Context
	Cancel func()
	Port   io.ReadWriteCloser
	Motor  *motor.Motor
}

const (
	shellKey       = "$shell"
	closedPrompt   = "[none] > "
	commandTimeout = time.Second
)

var (
	// flags

	evalOnly   bool
	outputJSON bool
	dryRun     bool

	// commands
	commands = []*ishell.Cmd{
		&OpenCmd,
		&CloseCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
	flag.BoolVar(&dryRun, "dry", dryRun, "Print command frames instead of sending them.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *port.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,
		DryRun:      dryRun,

		Shell:  ishell.New(),
		Config: conf,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(closedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Driver returns a Driver for the configured address.
// In dry-run mode frames are built with it instead of the Motor's.
func (s *Shell) Driver() *servo42.Driver {
	if s.Conn != nil {
		return s.Conn.Motor.Driver
	}
	return servo42.NewDriverWithAddress(s.Config.Address)
}

// MustBeOpen wraps command func requires an opened port, unless in dry-run mode.
func MustBeOpen(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		s := ShellFrom(c)
		if s.Conn == nil && !s.DryRun {
			c.Err(fmt.Errorf("port not opened"))
			return
		}
		fn(c)
	}
}

func (s *Shell) printDry(c *ishell.Context, build motor.BuildFunc) error {
	frame, err := build(s.Driver())
	if err != nil {
		c.Err(err)
		return err
	}
	if s.OutputJSON {
		return s.printJSON(c, map[string]string{"frame": hex.EncodeToString(frame)})
	}
	c.Println(hex.EncodeToString(frame))
	return nil
}

func (s *Shell) printJSON(c *ishell.Context, v interface{}) error {
	out, err := json.Marshal(v)
	if err != nil {
		c.Err(err)
		return err
	}
	c.Println(string(out))
	return nil
}

// Exec runs a setting or motion command and waits for the acknowledgement.
func Exec(c *ishell.Context, build motor.BuildFunc) (err error) {
	s := ShellFrom(c)
	if s.DryRun {
		return s.printDry(c, build)
	}
	ctx, cancel := context.WithTimeout(s.Conn.Ctx, commandTimeout)
	defer cancel()
	if err = s.Conn.Motor.Exec(ctx, build); err != nil {
		c.Err(err)
		return
	}
	if s.OutputJSON {
		return s.printJSON(c, map[string]bool{"ok": true})
	}
	c.Println("OK")
	return nil
}

// Reading is the result of a read command.
type Reading interface {
	fmt.Stringer
}

// Read runs a read command and prints the result.
func Read(c *ishell.Context, build motor.BuildFunc, read func(context.Context, *motor.Motor) (Reading, error)) (err error) {
	s := ShellFrom(c)
	if s.DryRun {
		return s.printDry(c, build)
	}
	ctx, cancel := context.WithTimeout(s.Conn.Ctx, commandTimeout)
	defer cancel()
	r, err := read(ctx, s.Conn.Motor)
	if err != nil {
		c.Err(err)
		return
	}
	if s.OutputJSON {
		return s.printJSON(c, r)
	}
	c.Println(r.String())
	return nil
}

// WithAutoOpen sets AutoOpen.
func (s *Shell) WithAutoOpen(en bool) *Shell {
	s.AutoOpen = en
	return s
}

// Open opens the configured port and starts the Link.
func (s *Shell) Open() error {
	rw, err := s.Config.Open()
	if err != nil {
		return err
	}
	link := comm.NewLink(rw)
	link.Timeout = s.Config.Timeout
	conn := &Conn{
		Port:  rw,
		Motor: motor.New(servo42.NewDriverWithAddress(s.Config.Address), link),
	}
	conn.Ctx, conn.Cancel = context.WithCancel(context.Background())
	s.Close()
	s.Conn = conn
	go func() {
		if err := link.Run(conn.Ctx); err != nil && err != context.Canceled {
			glog.Errorf("link stopped: %v", err)
		}
	}()
	s.Shell.SetPrompt(fmt.Sprintf("%s@0x%02x > ", s.Config.Device, s.Config.Address))
	return nil
}

// Close closes the current port.
func (s *Shell) Close() {
	if s.Conn != nil {
		s.Conn.Cancel()
		s.Conn.Port.Close()
		s.Conn = nil
		s.Shell.SetPrompt(closedPrompt)
	}
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if s.AutoOpen && !s.DryRun && s.Config.Device != "" {
		if s.Interactive {
			s.Shell.Printf("Opening %s ...\n", s.Config.Device)
		}
		if err := s.Open(); err != nil {
			log.Fatalf("open %q failed: %v", s.Config.Device, err)
		}
	}
	defer s.Close()

	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

var (
	// OpenCmd opens the port.
	OpenCmd = ishell.Cmd{
		Name:    "open",
		Aliases: []string{"o"},
		Help:    "[PORT] [ADDR]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			if len(c.Args) >= 1 {
				s.Config.Device = c.Args[0]
			}
			if len(c.Args) >= 2 {
				addr, err := port.ParseAddress(c.Args[1])
				if err != nil {
					c.Err(err)
					return
				}
				s.Config.Address = addr
			}
			if err := s.Open(); err != nil {
				c.Err(err)
			}
		},
	}

	// CloseCmd closes the port.
	CloseCmd = ishell.Cmd{
		Name:    "close",
		Aliases: []string{"c"},
		Help:    "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Close()
		},
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New(port.NewConfig()).WithAutoOpen(true).Run(flag.Args()...)
}
