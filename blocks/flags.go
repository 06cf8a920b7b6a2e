package blocks

type (
	// ChannelFlags is the cn_flags bit set.
	ChannelFlags uint32
	// ChannelGroupFlags is the cg_flags bit set.
	ChannelGroupFlags uint16
	// DataListFlags is the dl_flags bit set.
	DataListFlags uint8
	// HeaderListFlags is the hl_flags bit set.
	HeaderListFlags uint16
	// UnfinalizedFlags is the id_unfin_flags bit set.
	UnfinalizedFlags uint16
	// TimeFlags is the hd_time_flags bit set.
	TimeFlags uint8
	// ConversionFlags is the cc_flags bit set.
	ConversionFlags uint16
)

const (
	ChannelAllValuesInvalid ChannelFlags = 1 << iota
	ChannelInvalidationBitValid
	ChannelPrecisionValid
	ChannelValueRangeValid
	ChannelLimitRangeValid
	ChannelExtendedLimitRangeValid
	ChannelDiscrete
	ChannelCalibration
	ChannelCalculated
	ChannelVirtual
	ChannelBusEvent
	ChannelStrictlyMonotonous
	ChannelDefaultX
	ChannelEventSignal
	ChannelVLSDDataStream
)

const (
	GroupVLSD ChannelGroupFlags = 1 << iota
	GroupBusEvent
	GroupPlainBusEvent
	GroupRemoteMaster
	GroupEventSignal
)

const (
	DataListEqualLength DataListFlags = 1 << iota
	DataListTimeValues
	DataListAngleValues
	DataListDistanceValues
)

const (
	HeaderListEqualLength HeaderListFlags = 1 << iota
	HeaderListTimeValues
	HeaderListAngleValues
	HeaderListDistanceValues
)

const (
	UnfinCycleCounterCG UnfinalizedFlags = 1 << iota
	UnfinCycleCounterSR
	UnfinLengthDT
	UnfinLengthRD
	UnfinLastDL
	UnfinVLSDBytesCG
	UnfinVLSDOffsetCG
)

const (
	TimeLocal        TimeFlags = 1 << iota // start time is local time, not UTC
	TimeOffsetsValid                       // tz and dst offsets are valid
)

const (
	ConversionPrecisionValid ConversionFlags = 1 << iota
	ConversionPhysicalRangeValid
	ConversionStatusString
)

func (f ChannelFlags) Has(flag ChannelFlags) bool           { return f&flag == flag }
func (f ChannelGroupFlags) Has(flag ChannelGroupFlags) bool { return f&flag == flag }
func (f DataListFlags) Has(flag DataListFlags) bool         { return f&flag == flag }
func (f HeaderListFlags) Has(flag HeaderListFlags) bool     { return f&flag == flag }
func (f UnfinalizedFlags) Has(flag UnfinalizedFlags) bool   { return f&flag == flag }
func (f TimeFlags) Has(flag TimeFlags) bool                 { return f&flag == flag }
func (f ConversionFlags) Has(flag ConversionFlags) bool     { return f&flag == flag }
