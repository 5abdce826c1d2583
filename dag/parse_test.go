package dag // import "github.com/chalonverse/llvm/dag"

import (
	"strings"
	"testing"
)

func TestParseRoundTrip(t *testing.T) {
	for i, test := range []string{
		`%0 = frameslot 2
%1 = const 8
%2 = add %0 %1
%3 = register 1
store %2 %3
`,
		`%0 = register 3
%1 = register 4
%2 = mulhu %0 %1
`,
		`%0 = symbol printf
%1 = load %0
`,
		`%0 = register 1
%1 = const 70000
%2 = add %0 %1
%3 = load %2
`,
	} {
		g, err := Parse(strings.NewReader(test))
		if err != nil {
			t.Errorf("test %d: unexpected error: %v", i, err)
			continue
		}
		if got := g.String(); got != test {
			t.Errorf("test %d: got graph:\n%s\nwant:\n%s", i, got, test)
		}
	}
}

func TestParseSharing(t *testing.T) {
	src := `%a = register 1
%c = const 4
%t = add %a %c
%l = load %t
store %t %l
`
	g, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	root := g.NodeAt(g.Root.Node)
	if root.Op != Store {
		t.Fatalf("got root %v, want store", root.Op)
	}
	load := g.NodeAt(root.Args[1].Node)
	if load.Op != Load {
		t.Fatalf("got value operand %v, want load", load.Op)
	}
	if root.Args[0].Node != load.Args[0].Node {
		t.Errorf("got distinct nodes %d and %d for shared address", root.Args[0].Node, load.Args[0].Node)
	}
}

func TestParseComments(t *testing.T) {
	src := `; one block
%0 = register 1 ; the input

%1 = load %0
`
	g, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.NodeAt(g.Root.Node).Op != Load {
		t.Errorf("got root %v, want load", g.NodeAt(g.Root.Node).Op)
	}
}

func TestParseErrors(t *testing.T) {
	for i, test := range []struct {
		Src  string
		Want string
	}{
		{"", "dag: empty graph"},
		{"%0 = bogus 1\n", "dag: line 1: unrecognized opcode: bogus"},
		{"%0 = register 1\n%1 = add %0 %9\n", "dag: line 2: undefined value: %9"},
		{"%0 = add\n", "dag: line 1: add takes 2 operands, got 0"},
		{"%0 register 1\n", "dag: line 1: malformed assignment"},
		{"%0 = const x\n", `dag: line 1: const payload: strconv.ParseInt: parsing "x": invalid syntax`},
		{"%0 = register 1\n%1 = load 5\n", "dag: line 2: operand 0 of load is not a value reference: 5"},
	} {
		_, err := Parse(strings.NewReader(test.Src))
		if err == nil {
			t.Errorf("test %d: got nil error, want %q", i, test.Want)
			continue
		}
		if err.Error() != test.Want {
			t.Errorf("test %d: got error %q, want %q", i, err.Error(), test.Want)
		}
	}
}
