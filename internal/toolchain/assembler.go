package toolchain

// Pipeline is a two-stage assembler invocation: the preprocessor runs
// over the input source and its output is piped into the assembler.
type Pipeline struct {
	// Preprocess is the first stage, ending with the input file.
	Preprocess []string

	// Assemble is the second stage, reading preprocessed assembly on
	// stdin and writing the object file.
	Assemble []string
}

// defaultAssembler is used for triples with no entry in the
// caller-supplied assembler table.
const defaultAssembler = "llvm-mc"

// assemblePipeline builds the per-triple assembler pipeline. The
// assembler binary comes from the provided per-triple table; the fixed
// arguments select object-file output, the target triple, and the
// destination path.
func assemblePipeline(cpp string, assembler string, triple Triple, src, obj string) Pipeline {
	if assembler == "" {
		assembler = defaultAssembler
	}
	return Pipeline{
		Preprocess: []string{cpp, "-E", src},
		Assemble: []string{
			assembler,
			"-assemble",
			"-filetype=obj",
			"-triple=" + triple.String(),
			"-o", obj,
		},
	}
}
