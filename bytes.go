/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package shx

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"

	"dirpx.dev/shx/apis"
)

// rawBytes produces the canonical byte serialization of v for a Raw
// rule: a registered override first, then the value's own RawByter
// implementation, then the fixed per-kind layout.
//
// The per-kind layout is little-endian at the type's declared width,
// with architecture-sized int/uint/uintptr widened to 64 bits so the
// digest is platform-independent. Text and byte runs serialize as their
// raw bytes.
func (e *Engine) rawBytes(v reflect.Value) ([]byte, error) {
	if fn, ok := e.bts.Lookup(v.Type()); ok {
		return fn(v)
	}
	if v.CanInterface() {
		if rb, ok := v.Interface().(apis.RawByter); ok {
			return rb.HashBytes()
		}
	}

	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return []byte{1}, nil
		}
		return []byte{0}, nil

	case reflect.Int8:
		return []byte{byte(v.Int())}, nil
	case reflect.Int16:
		return binary.LittleEndian.AppendUint16(nil, uint16(v.Int())), nil
	case reflect.Int32:
		return binary.LittleEndian.AppendUint32(nil, uint32(v.Int())), nil
	case reflect.Int, reflect.Int64:
		return binary.LittleEndian.AppendUint64(nil, uint64(v.Int())), nil

	case reflect.Uint8:
		return []byte{byte(v.Uint())}, nil
	case reflect.Uint16:
		return binary.LittleEndian.AppendUint16(nil, uint16(v.Uint())), nil
	case reflect.Uint32:
		return binary.LittleEndian.AppendUint32(nil, uint32(v.Uint())), nil
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return binary.LittleEndian.AppendUint64(nil, v.Uint()), nil

	case reflect.Float32:
		return binary.LittleEndian.AppendUint32(nil, math.Float32bits(float32(v.Float()))), nil
	case reflect.Float64:
		return binary.LittleEndian.AppendUint64(nil, math.Float64bits(v.Float())), nil

	case reflect.Complex64:
		c := v.Complex()
		b := binary.LittleEndian.AppendUint32(nil, math.Float32bits(float32(real(c))))
		return binary.LittleEndian.AppendUint32(b, math.Float32bits(float32(imag(c)))), nil
	case reflect.Complex128:
		c := v.Complex()
		b := binary.LittleEndian.AppendUint64(nil, math.Float64bits(real(c)))
		return binary.LittleEndian.AppendUint64(b, math.Float64bits(imag(c))), nil

	case reflect.String:
		return []byte(v.String()), nil

	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return v.Bytes(), nil
		}

	case reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, v.Len())
			reflect.Copy(reflect.ValueOf(b), v)
			return b, nil
		}
	}

	return nil, fmt.Errorf("%w: no raw serialization for %s", ErrInvalidConfiguration, v.Type())
}
