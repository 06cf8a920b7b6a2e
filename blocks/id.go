package blocks

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/R1tschY/mdf4j-sub001/cursor"
	"github.com/R1tschY/mdf4j-sub001/errs"
)

const (
	IDBlockSize = 64 // identification block size, the header block follows it

	FileMagic            = "MDF     "
	UnfinishedFileMagic  = "UnFinMF "
	SupportedMajor       = 4
	DefaultProgramID     = "mdf4go"
	idFieldSize          = 8
	idReservedFillLength = 28
)

var versionPattern = regexp.MustCompile(`^(\d)\.(\d\d) {4}$`)

// Version is the format version from the identification block.
type Version struct {
	Major int
	Minor int
}

// ParseVersion parses the 8-character version field, e.g. "4.20    ".
func ParseVersion(field string) (Version, error) {
	m := versionPattern.FindStringSubmatch(field)
	if m == nil {
		return Version{}, errs.Formatf("unable to parse format version %q", field)
	}
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])

	return Version{Major: major, Minor: minor}, nil
}

// Number returns major*100 + minor, the value of the version number field.
func (v Version) Number() int {
	return v.Major*100 + v.Minor
}

// Field returns the 8-character version field.
func (v Version) Field() string {
	return fmt.Sprintf("%d.%02d    ", v.Major, v.Minor)
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%02d", v.Major, v.Minor)
}

// IDBlock is the identification block at offset 0.
type IDBlock struct {
	Finalized              bool
	Version                Version
	ProgramID              string
	UnfinalizedFlags       UnfinalizedFlags
	CustomUnfinalizedFlags uint16
}

// ReadIDBlock reads the identification block at the cursor position.
func ReadIDBlock(c *cursor.Cursor) (*IDBlock, error) {
	magic, err := c.ReadString(idFieldSize, cursor.Latin1)
	if err != nil {
		return nil, err
	}

	b := &IDBlock{}
	switch magic {
	case FileMagic:
		b.Finalized = true
	case UnfinishedFileMagic:
	default:
		return nil, errs.Formatf("not an MDF file: file does not start with %q", FileMagic)
	}

	versionField, err := c.ReadString(idFieldSize, cursor.Latin1)
	if err != nil {
		return nil, err
	}
	if b.Version, err = ParseVersion(versionField); err != nil {
		return nil, err
	}
	if b.Version.Major != SupportedMajor {
		return nil, &errs.UnsupportedVersionError{Version: b.Version.String()}
	}

	program, err := c.View(idFieldSize)
	if err != nil {
		return nil, err
	}
	b.ProgramID = strings.TrimRight(string(cursor.Latin1.Trim(program)), " ")

	byteOrder, err := c.ReadU16LE()
	if err != nil {
		return nil, err
	}
	floatFormat, err := c.ReadU16LE()
	if err != nil {
		return nil, err
	}
	versionNumber, err := c.ReadU16LE()
	if err != nil {
		return nil, err
	}
	codePage, err := c.ReadU16LE()
	if err != nil {
		return nil, err
	}
	if err := c.Skip(idReservedFillLength); err != nil {
		return nil, err
	}
	unfin, err := c.ReadU16LE()
	if err != nil {
		return nil, err
	}
	if b.CustomUnfinalizedFlags, err = c.ReadU16LE(); err != nil {
		return nil, err
	}
	b.UnfinalizedFlags = UnfinalizedFlags(unfin)

	if int(versionNumber) != b.Version.Number() {
		return nil, errs.Formatf("format versions do not match: %d vs %d", b.Version.Number(), versionNumber)
	}
	if byteOrder != 0 {
		return nil, errs.Formatf("unexpected non-default byte order %d", byteOrder)
	}
	if floatFormat != 0 {
		return nil, errs.Formatf("unexpected non-default floating point format %d", floatFormat)
	}
	if codePage != 0 {
		return nil, errs.Formatf("unexpected code page number %d", codePage)
	}

	return b, nil
}

// Encode writes the 64-byte identification block at the cursor position.
func (b *IDBlock) Encode(c *cursor.Cursor) error {
	magic := UnfinishedFileMagic
	if b.Finalized {
		magic = FileMagic
	}
	program := b.ProgramID
	if program == "" {
		program = DefaultProgramID
	}

	if err := c.WriteFixedString(magic, idFieldSize, cursor.Latin1); err != nil {
		return err
	}
	if err := c.WriteFixedString(b.Version.Field(), idFieldSize, cursor.Latin1); err != nil {
		return err
	}
	if err := c.WriteFixedString(program, idFieldSize, cursor.Latin1); err != nil {
		return err
	}
	if err := c.WriteU16LE(0); err != nil { // default byte order
		return err
	}
	if err := c.WriteU16LE(0); err != nil { // default float format
		return err
	}
	if err := c.WriteU16LE(uint16(b.Version.Number())); err != nil {
		return err
	}
	if err := c.WriteU16LE(0); err != nil { // code page
		return err
	}
	if err := c.WritePadding(idReservedFillLength); err != nil {
		return err
	}
	if err := c.WriteU16LE(uint16(b.UnfinalizedFlags)); err != nil {
		return err
	}

	return c.WriteU16LE(b.CustomUnfinalizedFlags)
}
