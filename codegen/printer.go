package codegen

import (
	"bytes"
	"fmt"
)

type printer struct {
	buf bytes.Buffer
}

func (p *printer) printf(format string, args ...any) {
	fmt.Fprintf(&p.buf, format, args...)
}

// check emits a call returning only an error, propagating a failure.
func (p *printer) check(format string, args ...any) {
	p.printf("if err := "+format+"; err != nil {\n", args...)
	p.printf("return err\n")
	p.printf("}\n")
}

// checkDiscard is check for a call returning a value and an error, with
// the value unused.
func (p *printer) checkDiscard(format string, args ...any) {
	p.printf("if _, err := "+format+"; err != nil {\n", args...)
	p.printf("return err\n")
	p.printf("}\n")
}

func (p *printer) bytes() []byte {
	return p.buf.Bytes()
}
