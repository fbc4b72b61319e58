// Package ustar reads and writes the USTAR tape-archive container
// format: a linear stream of 512-byte header records and 512-byte
// content blocks, terminated by all-zero sentinel blocks.
//
// The package centers on three types. [Header] is the decoded form of
// one fixed-layout header record with its octal text fields and byte-sum
// checksum. [Entry] pairs a header with the content blocks it describes.
// [Archive] is an ordered collection of entries supporting creation from
// filesystem paths, scanning from an existing stream, removal by name,
// and serialization with the end-of-archive terminator.
//
// # Quick Start
//
// Build an archive from files and write it out:
//
//	a, err := ustar.New("a.txt", ustar.BuildWithOwnerName(os.Getenv("USER")))
//	if err != nil {
//	    return err
//	}
//	if err := a.Add("b.txt"); err != nil {
//	    return err
//	}
//	_, err = a.WriteFile("out.tar")
//
// Scan an existing archive and list its entries:
//
//	a, err := ustar.OpenFile("out.tar")
//	if err != nil {
//	    return err
//	}
//	for _, s := range a.Inspect().Summaries() {
//	    fmt.Println(s.Name, s.Size, s.Digest)
//	}
//
// Scanning is lenient by default: any decode failure ends the scan with
// the entries collected so far, the behavior of readers that cannot tell
// a missing terminator from corruption. Pass [OpenWithStrict] to
// propagate failures other than the end-of-archive sentinel.
//
// File metadata is sourced through the [MetadataProvider] interface; the
// default provider stats the local filesystem. Archives and entries are
// not safe for concurrent mutation, and all stream access is sequential:
// no seeking is ever required of a reader or writer.
//
// Not supported: compression, multi-volume archives, GNU and PAX
// long-name extensions, and sparse files.
package ustar
