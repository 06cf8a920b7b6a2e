// Package blocks implements the block layer of the file format: the common
// block header, links between blocks, and the typed blocks built on them.
//
// # Block layout
//
// Every block after the identification block starts with the same 24-byte
// header, followed by its links and its body:
//
//	offset  size  field
//	0       4     type id, "##" + two upper-case letters ("##HD", "##CN", ...)
//	4       4     reserved, zero
//	8       8     total length: 24 + 8*N + body length
//	16      8     link count N
//	24      8*N   links (absolute file offsets, 0 = absent)
//	24+8N   ...   body
//
// All integers are little-endian. ReadHeader validates that the total length
// can hold the declared links and ends inside the source; the body length is
// derived from the two and is never trusted on its own. WriteHeader is the exact inverse.
//
// # Links
//
// A Link is a file offset. It carries no data and is resolved on demand with
// Resolve, which takes the cursor and a body parser as arguments. Nothing is
// cached: resolving the same link twice parses the block twice.
//
// Linked lists (next data group, next channel, ...) are walked with List,
// which stops at a zero link and fails with errs.ErrLinkCycle when an offset
// repeats. Files are expected to be acyclic, but the walk does not depend on
// it.
//
// # Typed blocks
//
// Each block type has a Read function usable as a Parser and implements
// Encoder, so the writer can emit it:
//
//	IDBlock              identification block at offset 0 (no common header)
//	HeaderBlock          ##HD file header
//	DataGroupBlock       ##DG
//	ChannelGroupBlock    ##CG
//	ChannelBlock         ##CN
//	TextBlock            ##TX and ##MD (zero-terminated text)
//	ConversionBlock      ##CC
//	DataBlock            ##DT raw records
//	DataZippedBlock      ##DZ compressed DT payload
//	DataListBlock        ##DL list of data blocks
//	HeaderListBlock      ##HL head of a DL chain
package blocks
