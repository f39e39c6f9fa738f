package calc

import "github.com/go-logr/logr"

// Option is an option used when creating or cloning a calculator.
type Option interface {
	calcOption(*Calculator)
}

type (
	varopt struct {
		name string
		val  float64
	}
	varsopt map[string]float64
	funcopt struct {
		name string
		fn   UnaryFunc
	}
	binfuncopt struct {
		name string
		fn   BinaryFunc
	}
	nodefaultsopt struct{}
	loggeropt     struct {
		log logr.Logger
	}
)

// SetVar sets the value of a variable.
func SetVar(name string, val float64) Option {
	return varopt{name, val}
}

func (o varopt) calcOption(c *Calculator) {
	c.reg.putConst(o.name, o.val)
}

// SetVars sets the values of any number of variables.
func SetVars(vars map[string]float64) Option {
	return varsopt(vars)
}

func (o varsopt) calcOption(c *Calculator) {
	for k, v := range o {
		c.reg.putConst(k, v)
	}
}

// SetFunc registers a unary function. To remove a function, pass nil for fn.
func SetFunc(name string, fn UnaryFunc) Option {
	return funcopt{name, fn}
}

func (o funcopt) calcOption(c *Calculator) {
	c.DefineFunc(o.name, o.fn)
}

// SetBinaryFunc registers a binary function. To remove a function, pass nil
// for fn.
func SetBinaryFunc(name string, fn BinaryFunc) Option {
	return binfuncopt{name, fn}
}

func (o binfuncopt) calcOption(c *Calculator) {
	c.DefineBinaryFunc(o.name, o.fn)
}

// NoDefaultFuncs removes the default functions. It applies before any other
// option regardless of its position, so functions set by other options
// remain. Without a function named pow, the ** operator fails.
func NoDefaultFuncs() Option {
	return nodefaultsopt{}
}

func (nodefaultsopt) calcOption(*Calculator) {
	// Handled by New and Clone.
}

// Logger sets the logger that receives assignments at verbosity 1 and
// scanned tokens and built trees at verbosity 2. The default discards
// everything.
func Logger(log logr.Logger) Option {
	return loggeropt{log}
}

func (o loggeropt) calcOption(c *Calculator) {
	c.log = o.log
}

func hasNoDefaults(opts []Option) bool {
	for _, opt := range opts {
		if _, ok := opt.(nodefaultsopt); ok {
			return true
		}
	}
	return false
}

func (c *Calculator) apply(opts []Option) {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.calcOption(c)
	}
}
