package objwriter

import "naotc/internal/pereader"

// Symbol is one marked node's emitted contribution, as the writer
// receives it: a name, the bytes it carries (if any — a type symbol
// with no body has none), and whether it is a method body or a data
// symbol.
type Symbol struct {
	Name     string
	IsMethod bool
	Bytes    []byte
}

// Writer is the object-file writer interface of spec §6.
type Writer interface {
	// EmitObject serialises symbols, in the order given, into
	// outputPath, consulting input for section alignment requirements.
	// The core only guarantees the order is topologically stable: a
	// symbol appears after everything its own emission needs.
	EmitObject(input *pereader.Module, outputPath string, symbols []Symbol) error
}

// FlatWriter is a Writer that appends every symbol it is asked to emit
// to an in-memory log instead of producing a real image, standing in
// for the out-of-scope PE/ELF/Mach-O encoder (spec §1).
type FlatWriter struct {
	Emitted []EmittedObject
}

// EmittedObject records one EmitObject call for later inspection.
type EmittedObject struct {
	OutputPath string
	Symbols    []Symbol
}

// EmitObject implements Writer.
func (w *FlatWriter) EmitObject(input *pereader.Module, outputPath string, symbols []Symbol) error {
	w.Emitted = append(w.Emitted, EmittedObject{OutputPath: outputPath, Symbols: append([]Symbol(nil), symbols...)})
	return nil
}
