package stencil

import (
	"fmt"
	"strings"
	"text/template"
)

const busPackedTemplate = `class {{.Name}} {
public:
  {{.Type}} value[{{.Size}}];
  {{.Type}} aux[{{.AuxSize}}];
  bool last;

  {{.Name}}() : last(false) {}

  {{.Type}} operator()(int i0, int i1 = 0, int i2 = 0) const {
    return value[{{offset .}}];
  }

  {{.Type}}& operator()(int i0, int i1 = 0, int i2 = 0) {
    return value[{{offset .}}];
  }
{{- if .Rev.BusSetter}}

  void set({{.Type}} v, int i0, int i1 = 0, int i2 = 0) {
    value[{{offset .}}] = v;
  }
{{- end}}

  void set_last(bool l) {
    last = l;
  }

  void copy(const {{.Name}}& other) {
    for (int i = 0; i < {{.Size}}; i++) {
      value[i] = other.value[i];
    }
    last = other.last;
  }

  {{.Name}}& operator=(const {{.Name}}& other) {
    copy(other);
    return *this;
  }
};

`

const packedTemplate = `class {{.Name}} {
public:
  {{.Type}} value[{{.Size}}];
  {{.Type}} aux[{{.AuxSize}}];
  bool last;

  {{.Name}}() : last(false) {}
{{- if .Rev.PackedConversion}}

  operator {{.Bus}}() const {
    {{.Bus}} out;
    for (int i = 0; i < {{.Size}}; i++) {
      out.value[i] = value[i];
    }
    out.set_last(last);
    return out;
  }
{{- end}}

  void set_last(bool l) {
    last = l;
  }

  {{.Type}}& operator()(int i0, int i1 = 0, int i2 = 0) {
    return value[{{offset .}}];
  }
};

`

const plainTemplate = `class {{.Name}} {
public:
  {{.Type}} value[{{.Size}}];
  {{.Type}} aux[{{.AuxSize}}];

  {{.Name}}() {}

  {{.Name}}(const {{.Name}}& other) {
    for (int i = 0; i < {{.Size}}; i++) {
      value[i] = other.value[i];
    }
  }

  {{.Name}}({{.Name}}&& other) {
    for (int i = 0; i < {{.Size}}; i++) {
      value[i] = other.value[i];
    }
  }

  {{.Name}}& operator=(const {{.Name}}& other) {
    for (int i = 0; i < {{.Size}}; i++) {
      value[i] = other.value[i];
    }
    return *this;
  }

  {{.Name}}& operator=({{.Name}}&& other) {
    for (int i = 0; i < {{.Size}}; i++) {
      value[i] = other.value[i];
    }
    return *this;
  }

  {{.Type}}& operator()(int i0, int i1 = 0, int i2 = 0) {
    return value[{{offset .}}];
  }

  void write({{.Type}} v, int i0, int i1 = 0, int i2 = 0) {
    value[{{offset .}}] = v;
  }

  operator {{.Bus}}() const {
    {{.Bus}} out;
    for (int i = 0; i < {{.Size}}; i++) {
      out.value[i] = value[i];
    }
    return out;
  }
};

`

const streamTemplate = `class {{.Name}} {
public:
  int index;
  {{.Elem}} elems[{{.Depth}}];

  {{.Name}}() : index(0) {}

  {{.Elem}} read() {
    return elems[index];
  }

  void write(const {{.Elem}}& v) {
    elems[index] = v;
  }
};

`

const lineBufferTemplate = `class {{.Name}} {
{{- if .Rev.Composites}}
public:
  {{.Out}} window;

  void write(const {{.In}}& v) {
    (void)v;
  }

  {{.Out}} read() {
    return window;
  }

  bool has_valid_data() {
    return true;
  }
{{end -}}
};

`

const memoryTemplate = `class {{.Name}} {
{{- if .Rev.Composites}}
public:
  {{.Type}} data[{{.Depth}}];

  {{.Type}} read(int addr) const {
    return data[addr];
  }

  void write({{.Type}} v, int addr) {
    data[addr] = v;
  }
{{end -}}
};

`

const typedefTemplate = `typedef {{.Target}} {{.Alias}};

`

var tplFuncs = template.FuncMap{
	// offset renders the flattened offset of (i0, i1, i2) into value[].
	"offset": func(d valueData) string {
		return fmt.Sprintf("i0 + %d * i1 + %d * i2", d.E0, d.E0*d.E1)
	},
}

var (
	busPackedTmpl  = template.Must(template.New("bus_packed").Funcs(tplFuncs).Parse(busPackedTemplate))
	packedTmpl     = template.Must(template.New("packed").Funcs(tplFuncs).Parse(packedTemplate))
	plainTmpl      = template.Must(template.New("plain").Funcs(tplFuncs).Parse(plainTemplate))
	streamTmpl     = template.Must(template.New("stream").Parse(streamTemplate))
	lineBufferTmpl = template.Must(template.New("linebuffer").Parse(lineBufferTemplate))
	memoryTmpl     = template.Must(template.New("memory").Parse(memoryTemplate))
	typedefTmpl    = template.Must(template.New("typedef").Parse(typedefTemplate))
)

type valueData struct {
	Name    string
	Bus     string
	Type    string
	E0, E1  int
	Size    int
	AuxSize int
	Rev     Revision
}

func newValueData(name, typ string, ext Extents, rev Revision) valueData {
	return valueData{
		Name:    name,
		Bus:     StencilName(PrefixAxiPacked, typ, ext.E0, ext.E1),
		Type:    typ,
		E0:      ext.E0,
		E1:      ext.E1,
		Size:    ext.Size(),
		AuxSize: ext.AuxSize(),
		Rev:     rev,
	}
}

// Render produces the declaration text for d under rev.
// It accepts any type token verbatim and never fails.
func Render(d Decl, rev Revision) string {
	switch d := d.(type) {
	case BusPacked:
		return execute(busPackedTmpl, newValueData(d.Name(), d.Type, d.Extents, rev))
	case Packed:
		return execute(packedTmpl, newValueData(d.Name(), d.Type, d.Extents, rev))
	case Plain:
		return execute(plainTmpl, newValueData(d.Name(), d.Type, d.Extents, rev))
	case Stream:
		return execute(streamTmpl, struct {
			Name, Elem string
			Depth      int
		}{d.Name(), d.Elem, StreamDepth})
	case LineBuffer:
		return execute(lineBufferTmpl, struct {
			Name, In, Out string
			Rev           Revision
		}{d.Name(), d.In, d.Out, rev})
	case Memory:
		return execute(memoryTmpl, struct {
			Name, Type string
			Depth      int
			Rev        Revision
		}{d.Name(), d.Type, d.Depth, rev})
	case Typedef:
		return execute(typedefTmpl, d)
	default:
		panic(fmt.Sprintf("stencil: unhandled declaration %T", d))
	}
}

func execute(t *template.Template, data any) string {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		// Templates are fixed and data is plain values, so this is a programming error.
		panic(fmt.Sprintf("stencil: render %s: %v", t.Name(), err))
	}
	return b.String()
}
