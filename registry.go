package calc

// registry holds the names an expression can refer to. The lexer adds
// words, the parser assigns constants, and the evaluator calls functions.
// Everything persists across evaluations with the same Calculator.
type registry struct {
	// consts maps names to values, for both built-in constants and
	// assigned variables.
	consts map[string]float64
	// words maps every variable name ever scanned to its identifier token,
	// so that repeated mentions share one token.
	words  map[string]token
	unary  map[string]UnaryFunc
	binary map[string]BinaryFunc
}

func newRegistry(defaults bool) *registry {
	r := registry{
		consts: make(map[string]float64, len(globalconsts)),
		words:  make(map[string]token, len(globalconsts)),
		unary:  make(map[string]UnaryFunc, len(globalfuncs)),
		binary: make(map[string]BinaryFunc, len(globalbinfuncs)),
	}
	for k, v := range globalconsts {
		r.putConst(k, v)
	}
	if defaults {
		for k, f := range globalfuncs {
			r.unary[k] = f
		}
		for k, f := range globalbinfuncs {
			r.binary[k] = f
		}
	}
	return &r
}

// putWord records an identifier if it has not been seen.
func (r *registry) putWord(name string) {
	if _, ok := r.words[name]; !ok {
		r.words[name] = token{kind: tokenIdent, text: name}
	}
}

// putConst sets a constant, overwriting any previous value.
func (r *registry) putConst(name string, v float64) {
	r.consts[name] = v
	r.putWord(name)
}

func (r *registry) isUnary(name string) bool {
	_, ok := r.unary[name]
	return ok
}

func (r *registry) isBinary(name string) bool {
	_, ok := r.binary[name]
	return ok
}

// removeDefaults removes every function that has a default name.
func (r *registry) removeDefaults() {
	for k := range globalfuncs {
		delete(r.unary, k)
	}
	for k := range globalbinfuncs {
		delete(r.binary, k)
	}
}

// clone makes a deep copy of the tables.
func (r *registry) clone() *registry {
	n := registry{
		consts: make(map[string]float64, len(r.consts)),
		words:  make(map[string]token, len(r.words)),
		unary:  make(map[string]UnaryFunc, len(r.unary)),
		binary: make(map[string]BinaryFunc, len(r.binary)),
	}
	for k, v := range r.consts {
		n.consts[k] = v
	}
	for k, v := range r.words {
		n.words[k] = v
	}
	for k, v := range r.unary {
		n.unary[k] = v
	}
	for k, v := range r.binary {
		n.binary[k] = v
	}
	return &n
}
