// Package lua exposes CSTN to gopher-lua scripts.
//
// Values cross into Lua as tagged tables:
//
//	{string="…"}
//	{integer="-12"}          decimal text with the usual sign convention
//	{list={v1, v2, …}}
//	{tuple={v1, v2, …}}
//	{map={{k1, v1}, {k2, v2}, …}}
//
// FromLua also accepts plain Lua strings and integral numbers.
package lua

import (
	"errors"
	"fmt"
	"math"

	"github.com/alttpo/cstn"
	lua "github.com/yuin/gopher-lua"
)

// ModuleName is the name scripts pass to require.
const ModuleName = "cstn"

var ErrNotAValue = errors.New("not a cstn value")

var exports = map[string]lua.LGFunction{
	"parse":     luaParse,
	"serialize": luaSerialize,
	"pretty":    luaPretty,
	"equal":     luaEqual,
}

// Preload registers the module so scripts can require it.
func Preload(L *lua.LState) {
	L.PreloadModule(ModuleName, Loader)
}

func Loader(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), exports)
	L.Push(mod)
	return 1
}

func pushError(L *lua.LState, err error) int {
	L.Push(lua.LNil)
	L.Push(lua.LString(err.Error()))
	return 2
}

func luaParse(L *lua.LState) int {
	text := L.CheckString(1)

	v, err := cstn.Parse(text)
	if err != nil {
		return pushError(L, err)
	}

	L.Push(ToLua(L, v))
	return 1
}

func luaSerialize(L *lua.LState) int {
	v, err := FromLua(L.CheckAny(1))
	if err != nil {
		return pushError(L, err)
	}

	text, err := cstn.Serialize(v)
	if err != nil {
		return pushError(L, err)
	}

	L.Push(lua.LString(text))
	return 1
}

func luaPretty(L *lua.LState) int {
	v, err := FromLua(L.CheckAny(1))
	if err != nil {
		return pushError(L, err)
	}
	indent := L.OptString(2, "\t")

	text, err := cstn.SerializeIndent(v, indent)
	if err != nil {
		return pushError(L, err)
	}

	L.Push(lua.LString(text))
	return 1
}

func luaEqual(L *lua.LState) int {
	a, err := FromLua(L.CheckAny(1))
	if err != nil {
		return pushError(L, err)
	}
	b, err := FromLua(L.CheckAny(2))
	if err != nil {
		return pushError(L, err)
	}

	L.Push(lua.LBool(cstn.Equal(a, b)))
	return 1
}

// ToLua converts v to its tagged table form. A nil value becomes lua.LNil.
func ToLua(L *lua.LState, v *cstn.Value) lua.LValue {
	if v == nil {
		return lua.LNil
	}

	t := L.NewTable()
	switch v.Kind {
	case cstn.KindString:
		t.RawSetString("string", lua.LString(v.Text))
	case cstn.KindInteger:
		t.RawSetString("integer", lua.LString(v.Int.String()))
	case cstn.KindList:
		t.RawSetString("list", itemsToLua(L, v.Items))
	case cstn.KindTuple:
		t.RawSetString("tuple", itemsToLua(L, v.Items))
	case cstn.KindMap:
		pairs := L.NewTable()
		for _, p := range v.Pairs {
			pair := L.NewTable()
			pair.Append(ToLua(L, p.Key))
			pair.Append(ToLua(L, p.Value))
			pairs.Append(pair)
		}
		t.RawSetString("map", pairs)
	default:
		return lua.LNil
	}
	return t
}

func itemsToLua(L *lua.LState, items []*cstn.Value) *lua.LTable {
	list := L.NewTable()
	for _, c := range items {
		list.Append(ToLua(L, c))
	}
	return list
}

// FromLua converts a tagged table, string or integral number to a value.
func FromLua(lv lua.LValue) (*cstn.Value, error) {
	return fromLua(lv, 0)
}

func fromLua(lv lua.LValue, depth int) (*cstn.Value, error) {
	if depth > cstn.DefaultMaxDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d", ErrNotAValue, cstn.DefaultMaxDepth)
	}

	switch x := lv.(type) {
	case lua.LString:
		return cstn.String(string(x)), nil
	case lua.LNumber:
		f := float64(x)
		if f != math.Trunc(f) || math.IsInf(f, 0) || f >= 1<<63 || f < -(1<<63) {
			return nil, fmt.Errorf("%w: number %v is not an integer", ErrNotAValue, f)
		}
		return cstn.Int(int64(f)), nil
	case *lua.LTable:
		return tableToValue(x, depth)
	}

	return nil, fmt.Errorf("%w: lua %s", ErrNotAValue, lv.Type())
}

func tableToValue(t *lua.LTable, depth int) (*cstn.Value, error) {
	if s, ok := t.RawGetString("string").(lua.LString); ok {
		return cstn.String(string(s)), nil
	}

	if s, ok := t.RawGetString("integer").(lua.LString); ok {
		v, err := cstn.IntegerString(string(s), 10)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotAValue, err)
		}
		return v, nil
	}

	if list, ok := t.RawGetString("list").(*lua.LTable); ok {
		items, err := tableItems(list, depth)
		if err != nil {
			return nil, err
		}
		return cstn.List(items...), nil
	}

	if tuple, ok := t.RawGetString("tuple").(*lua.LTable); ok {
		items, err := tableItems(tuple, depth)
		if err != nil {
			return nil, err
		}
		return cstn.Tuple(items...), nil
	}

	if pairs, ok := t.RawGetString("map").(*lua.LTable); ok {
		ps := make([]cstn.Pair, 0, pairs.Len())
		for i := 1; i <= pairs.Len(); i++ {
			pair, ok := pairs.RawGetInt(i).(*lua.LTable)
			if !ok || pair.Len() != 2 {
				return nil, fmt.Errorf("%w: map entry %d is not a {key, value} pair", ErrNotAValue, i)
			}
			k, err := fromLua(pair.RawGetInt(1), depth+1)
			if err != nil {
				return nil, err
			}
			v, err := fromLua(pair.RawGetInt(2), depth+1)
			if err != nil {
				return nil, err
			}
			ps = append(ps, cstn.P(k, v))
		}
		return cstn.NewMap(ps...), nil
	}

	return nil, fmt.Errorf("%w: table has no string, integer, list, tuple or map field", ErrNotAValue)
}

func tableItems(t *lua.LTable, depth int) ([]*cstn.Value, error) {
	items := make([]*cstn.Value, 0, t.Len())
	for i := 1; i <= t.Len(); i++ {
		c, err := fromLua(t.RawGetInt(i), depth+1)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, nil
}
