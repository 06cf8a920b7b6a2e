package read

import (
	"github.com/R1tschY/mdf4j-sub001/blocks"
	"github.com/R1tschY/mdf4j-sub001/datatype"
	"github.com/R1tschY/mdf4j-sub001/de"
	"github.com/R1tschY/mdf4j-sub001/errs"
	"github.com/R1tschY/mdf4j-sub001/format"
)

// numeric accepts every numeric raw type.
var numeric = datatype.Partial[struct{}]{
	Integer:         func(datatype.IntegerType) (struct{}, error) { return struct{}{}, nil },
	UnsignedInteger: func(datatype.UnsignedIntegerType) (struct{}, error) { return struct{}{}, nil },
	Float:           func(datatype.FloatType) (struct{}, error) { return struct{}{}, nil },
	Else: func(t datatype.Type) (struct{}, error) {
		return struct{}{}, errs.Formatf("numeric conversion of %s channel", t)
	},
}

func newConversionRead(ch *Channel, r ValueRead) (ValueRead, error) {
	cc := ch.Conversion
	if cc.Type == format.ConversionIdentity {
		return r, nil
	}

	raw, err := datatype.OfChannel(ch.Block)
	if err != nil {
		return nil, err
	}

	switch cc.Type {
	case format.ConversionLinear:
		if _, err := datatype.Accept[struct{}](raw, numeric); err != nil {
			return nil, err
		}
		if len(cc.Values) < 2 {
			return nil, errs.Formatf("linear conversion with %d parameters", len(cc.Values))
		}

		return linearRead(cc.Values[0], cc.Values[1], r), nil
	case format.ConversionRational:
		if _, err := datatype.Accept[struct{}](raw, numeric); err != nil {
			return nil, err
		}
		if len(cc.Values) < 6 {
			return nil, errs.Formatf("rational conversion with %d parameters", len(cc.Values))
		}

		return rationalRead([6]float64(cc.Values[:6]), r), nil
	default:
		return nil, errs.NotImplementedf("channel conversion %s", cc.Type)
	}
}

// conversionPrecision returns the display precision of a conversion result,
// -1 if unknown.
func conversionPrecision(cc *blocks.ConversionBlock) int {
	if cc.Flags.Has(blocks.ConversionPrecisionValid) {
		return int(cc.Precision)
	}

	return -1
}

func linearRead(p1, p2 float64, r ValueRead) ValueRead {
	return ValueReadFunc(func(rec RecordBuffer, v de.Visitor) error {
		x := rawFloat{Expected: "numeric value"}
		if err := r.Read(rec, &x); err != nil {
			return err
		}

		return v.VisitF64(p1 + p2*x.v)
	})
}

func rationalRead(p [6]float64, r ValueRead) ValueRead {
	return ValueReadFunc(func(rec RecordBuffer, v de.Visitor) error {
		x := rawFloat{Expected: "numeric value"}
		if err := r.Read(rec, &x); err != nil {
			return err
		}
		xx := x.v * x.v

		return v.VisitF64((p[0]*xx + p[1]*x.v + p[2]) / (p[3]*xx + p[4]*x.v + p[5]))
	})
}

// rawFloat collects a raw numeric value as float64.
type rawFloat struct {
	de.Expected
	v float64
}

func (x *rawFloat) VisitU8(v uint8) error    { x.v = float64(v); return nil }
func (x *rawFloat) VisitU16(v uint16) error  { x.v = float64(v); return nil }
func (x *rawFloat) VisitU32(v uint32) error  { x.v = float64(v); return nil }
func (x *rawFloat) VisitU64(v uint64) error  { x.v = float64(v); return nil }
func (x *rawFloat) VisitI8(v int8) error     { x.v = float64(v); return nil }
func (x *rawFloat) VisitI16(v int16) error   { x.v = float64(v); return nil }
func (x *rawFloat) VisitI32(v int32) error   { x.v = float64(v); return nil }
func (x *rawFloat) VisitI64(v int64) error   { x.v = float64(v); return nil }
func (x *rawFloat) VisitF32(v float32) error { x.v = float64(v); return nil }
func (x *rawFloat) VisitF64(v float64) error { x.v = v; return nil }
