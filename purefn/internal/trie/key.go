package trie

import (
	"reflect"
	"slices"
	"strconv"
	"strings"
	"unsafe"
)

// Key is the classified form of a single argument.
//
// Reference keys identify an object by address and are never held strongly by
// the trie. Value keys are compared with Go's == on the dynamic value.
type Key struct {
	value any
	ref   refKey
	ptr   unsafe.Pointer
}

// IsRef reports whether the argument is compared by identity.
func (k Key) IsRef() bool {
	return k.ptr != nil
}

// refKey locates the entry of a referenced object inside a node. The address is
// a plain integer so it does not keep the object reachable.
type refKey struct {
	addr uintptr
	typ  reflect.Type
	len  int
	cap  int
}

// reprKey stands in for values that cannot be map keys as they are: nil maps,
// nil funcs, composites holding slices or maps, and values unequal to
// themselves such as NaN. Slices and maps nested in such values compare by
// content.
type reprKey struct {
	typ  reflect.Type
	repr string
}

type eface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// dataOf returns the data word of an interface holding a pointer-shaped value.
// For funcs this is the closure, not the code pointer reflect would give.
func dataOf(v any) unsafe.Pointer {
	return (*eface)(unsafe.Pointer(&v)).data
}

// KeyOf classifies arg as a reference or value key.
//
// Non-nil pointers, unsafe pointers, maps, channels, funcs and slices are
// references. A slice is identified by its backing array, length and capacity.
// Everything else, nil included, is a value.
func KeyOf(arg any) Key {
	if arg == nil {
		return Key{}
	}

	rv := reflect.ValueOf(arg)
	switch rv.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan, reflect.Func:
		if !rv.IsNil() {
			p := dataOf(arg)
			return Key{ref: refKey{addr: uintptr(p), typ: rv.Type()}, ptr: p}
		}
	case reflect.Slice:
		if !rv.IsNil() {
			p := rv.UnsafePointer()
			return Key{
				ref: refKey{addr: uintptr(p), typ: rv.Type(), len: rv.Len(), cap: rv.Cap()},
				ptr: p,
			}
		}
	}

	// Equal is false for NaN and for structs holding one.
	if rv.Comparable() && rv.Equal(rv) {
		return Key{value: arg}
	}
	var b strings.Builder
	render(&b, rv)
	return Key{value: reprKey{typ: rv.Type(), repr: b.String()}}
}

// render writes a structural rendering of v. It walks fields and elements
// through reflect so String and GoString methods cannot collapse distinct
// values. Nested references render as addresses and are not followed.
func render(b *strings.Builder, v reflect.Value) {
	switch v.Kind() {
	case reflect.Invalid:
		b.WriteString("nil")
	case reflect.Bool:
		b.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		b.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, 64))
	case reflect.Complex64, reflect.Complex128:
		b.WriteString(strconv.FormatComplex(v.Complex(), 'g', -1, 128))
	case reflect.String:
		b.WriteString(strconv.Quote(v.String()))
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice:
		if v.IsNil() {
			b.WriteString("nil")
			return
		}
		if v.Kind() == reflect.Map {
			renderMap(b, v)
			return
		}
		if v.Kind() == reflect.Slice {
			renderElems(b, v)
			return
		}
		b.WriteString("0x")
		b.WriteString(strconv.FormatUint(uint64(uintptr(v.UnsafePointer())), 16))
	case reflect.Interface:
		if v.IsNil() {
			b.WriteString("nil")
			return
		}
		e := v.Elem()
		b.WriteString(e.Type().String())
		b.WriteByte('(')
		render(b, e)
		b.WriteByte(')')
	case reflect.Array:
		renderElems(b, v)
	case reflect.Struct:
		b.WriteByte('{')
		for i := 0; i < v.NumField(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(v.Type().Field(i).Name)
			b.WriteByte(':')
			render(b, v.Field(i))
		}
		b.WriteByte('}')
	}
}

func renderElems(b *strings.Builder, v reflect.Value) {
	b.WriteByte('[')
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		render(b, v.Index(i))
	}
	b.WriteByte(']')
}

// renderMap sorts entries by their rendering so iteration order does not
// leak into the key.
func renderMap(b *strings.Builder, v reflect.Value) {
	entries := make([]string, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		var e strings.Builder
		render(&e, iter.Key())
		e.WriteByte(':')
		render(&e, iter.Value())
		entries = append(entries, e.String())
	}
	slices.Sort(entries)
	b.WriteString("map[")
	b.WriteString(strings.Join(entries, ", "))
	b.WriteByte(']')
}
