package interp

import (
	"math"
	"regexp"
	"strings"
)

func method(name string, fn func(c *call, args []Value) Value) *Builtin {
	return &Builtin{Name: name, Fn: fn}
}

func arrayMember(a *Array, key string) Value {
	if key == "length" {
		return float64(len(a.Elems))
	}
	if i, ok := arrayIndex(key); ok {
		if i < len(a.Elems) {
			return a.Elems[i]
		}
		return Undefined
	}
	switch key {
	case "map":
		return method(key, func(c *call, args []Value) Value {
			fn := c.arg(args, 0)
			out := make([]Value, 0, len(a.Elems))
			for i, e := range a.Elems {
				out = append(out, c.invoke(fn, e, float64(i), a))
			}
			return NewArray(out...)
		})
	case "flatMap":
		return method(key, func(c *call, args []Value) Value {
			fn := c.arg(args, 0)
			var out []Value
			for i, e := range a.Elems {
				r := c.invoke(fn, e, float64(i), a)
				if sub, ok := r.(*Array); ok {
					out = append(out, sub.Elems...)
				} else {
					out = append(out, r)
				}
			}
			return NewArray(out...)
		})
	case "filter":
		return method(key, func(c *call, args []Value) Value {
			fn := c.arg(args, 0)
			var out []Value
			for i, e := range a.Elems {
				if truthy(c.invoke(fn, e, float64(i), a)) {
					out = append(out, e)
				}
			}
			return NewArray(out...)
		})
	case "concat":
		return method(key, func(c *call, args []Value) Value {
			out := append([]Value(nil), a.Elems...)
			for _, arg := range args {
				if sub, ok := arg.(*Array); ok {
					out = append(out, sub.Elems...)
				} else {
					out = append(out, arg)
				}
			}
			return NewArray(out...)
		})
	case "join":
		return method(key, func(c *call, args []Value) Value {
			sep := ","
			if v := c.arg(args, 0); v != Undefined {
				sep = toString(v)
			}
			return join(a.Elems, sep)
		})
	case "slice":
		return method(key, func(c *call, args []Value) Value {
			start, end := sliceBounds(len(a.Elems), args)
			return NewArray(append([]Value(nil), a.Elems[start:end]...)...)
		})
	case "reverse":
		return method(key, func(c *call, args []Value) Value {
			for i, j := 0, len(a.Elems)-1; i < j; i, j = i+1, j-1 {
				a.Elems[i], a.Elems[j] = a.Elems[j], a.Elems[i]
			}
			return a
		})
	case "includes":
		return method(key, func(c *call, args []Value) Value {
			x := c.arg(args, 0)
			for _, e := range a.Elems {
				if sameValueZero(e, x) {
					return true
				}
			}
			return false
		})
	}
	return Undefined
}

func stringMember(s, key string) Value {
	runes := []rune(s)
	if key == "length" {
		return float64(len(runes))
	}
	if i, ok := arrayIndex(key); ok {
		if i < len(runes) {
			return string(runes[i])
		}
		return Undefined
	}
	switch key {
	case "split":
		return method(key, func(c *call, args []Value) Value {
			var parts []string
			switch sep := c.arg(args, 0).(type) {
			case undefinedValue:
				parts = []string{s}
			case *Regex:
				re, err := regexp.Compile(sep.Source)
				if err != nil {
					c.failf("unsupported regular expression %s: %v", sep, err)
				}
				parts = re.Split(s, -1)
			default:
				parts = strings.Split(s, toString(sep))
			}
			out := make([]Value, 0, len(parts))
			for _, p := range parts {
				out = append(out, p)
			}
			return NewArray(out...)
		})
	case "toUpperCase":
		return method(key, func(c *call, args []Value) Value { return strings.ToUpper(s) })
	case "toLowerCase":
		return method(key, func(c *call, args []Value) Value { return strings.ToLower(s) })
	case "trim":
		return method(key, func(c *call, args []Value) Value { return strings.TrimSpace(s) })
	case "startsWith":
		return method(key, func(c *call, args []Value) Value {
			return strings.HasPrefix(s, toString(c.arg(args, 0)))
		})
	case "endsWith":
		return method(key, func(c *call, args []Value) Value {
			return strings.HasSuffix(s, toString(c.arg(args, 0)))
		})
	case "includes":
		return method(key, func(c *call, args []Value) Value {
			return strings.Contains(s, toString(c.arg(args, 0)))
		})
	case "slice":
		return method(key, func(c *call, args []Value) Value {
			start, end := sliceBounds(len(runes), args)
			return string(runes[start:end])
		})
	case "charAt":
		return method(key, func(c *call, args []Value) Value {
			i := toNumber(c.arg(args, 0))
			if math.IsNaN(i) {
				i = 0
			}
			if i < 0 || i >= float64(len(runes)) {
				return ""
			}
			return string(runes[int(i)])
		})
	}
	return Undefined
}

// sliceBounds resolves the start and end arguments of slice against a
// length n, counting negative positions from the end.
func sliceBounds(n int, args []Value) (int, int) {
	pos := func(v Value, def int) int {
		if v == Undefined {
			return def
		}
		f := math.Trunc(toNumber(v))
		switch {
		case math.IsNaN(f):
			return 0
		case f < 0:
			f = math.Max(0, float64(n)+f)
		case f > float64(n):
			f = float64(n)
		}
		return int(f)
	}
	var start, end Value = Undefined, Undefined
	if len(args) > 0 {
		start = args[0]
	}
	if len(args) > 1 {
		end = args[1]
	}
	s, e := pos(start, 0), pos(end, n)
	if e < s {
		e = s
	}
	return s, e
}

func sameValueZero(a, b Value) bool {
	if x, ok := a.(float64); ok {
		if y, ok := b.(float64); ok && math.IsNaN(x) && math.IsNaN(y) {
			return true
		}
	}
	return strictEquals(a, b)
}
