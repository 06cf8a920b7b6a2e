package de

// Into binds a value helper and a setter into a DeserializeInto.
//
//	type row struct{ Speed float64 }
//	bind := de.Into(de.Float64, func(r *row, v float64) { r.Speed = v })
func Into[B, T any](get func(Deserializer) (T, error), set func(dest B, v T)) DeserializeInto[B] {
	return func(d Deserializer, dest B) error {
		v, err := get(d)
		if err != nil {
			return err
		}
		set(dest, v)

		return nil
	}
}

func IntoInt64[B any](set func(dest B, v int64)) DeserializeInto[B]     { return Into(Int64, set) }
func IntoUint64[B any](set func(dest B, v uint64)) DeserializeInto[B]   { return Into(Uint64, set) }
func IntoFloat64[B any](set func(dest B, v float64)) DeserializeInto[B] { return Into(Float64, set) }
func IntoFloat32[B any](set func(dest B, v float32)) DeserializeInto[B] { return Into(Float32, set) }
func IntoBool[B any](set func(dest B, v bool)) DeserializeInto[B]       { return Into(Bool, set) }
func IntoString[B any](set func(dest B, v string)) DeserializeInto[B]   { return Into(String, set) }
func IntoBytes[B any](set func(dest B, v []byte)) DeserializeInto[B]    { return Into(Bytes, set) }
func IntoAny[B any](set func(dest B, v any)) DeserializeInto[B]         { return Into(Any, set) }

// Skip returns a DeserializeInto that ignores the value.
func Skip[B any]() DeserializeInto[B] {
	return func(d Deserializer, _ B) error {
		return d.Ignore()
	}
}
