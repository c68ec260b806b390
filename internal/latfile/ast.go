package latfile

// file is a whole MAD-X style input.
type file struct {
	Statements []*statement `@@*`
}

type statement struct {
	Use    *useStmt    `  @@`
	Assign *assignStmt `| @@`
	Line   *lineDef    `| @@`
	Elem   *elemDef    `| @@`
}

// useStmt selects the beamline: USE, RING; or USE, PERIOD=RING;
type useStmt struct {
	Name string `KwUse "," ( KwPeriod "=" )? @Ident ";"`
}

// assignStmt defines a variable: ANG = 2*PI/12;
type assignStmt struct {
	Name  string `@Ident ( "=" | Assign )`
	Value *expr  `@@ ";"`
}

// lineDef: CELL: LINE=(QF, D, 2*B, -ARC);
type lineDef struct {
	Name  string      `@Ident ":" KwLine "="`
	Items []*lineItem `"(" @@ ( "," @@ )* ")" ";"`
}

type lineItem struct {
	Reverse bool   `@"-"?`
	Count   int    `( @Number "*" )?`
	Name    string `@Ident`
}

// elemDef: QF: QUADRUPOLE, L=0.3, K1=1.2;
// The class may also name an earlier element, whose attributes are inherited.
type elemDef struct {
	Name  string  `@Ident ":"`
	Class string  `@Ident`
	Attrs []*attr `( "," @@ )* ";"`
}

type attr struct {
	Key   string `@Ident ( "=" | Assign )`
	Value *expr  `@@`
}

type expr struct {
	Left  *term     `@@`
	Right []*opTerm `@@*`
}

type opTerm struct {
	Op   string `@( "+" | "-" )`
	Term *term  `@@`
}

type term struct {
	Left  *factor     `@@`
	Right []*opFactor `@@*`
}

type opFactor struct {
	Op     string  `@( "*" | "/" )`
	Factor *factor `@@`
}

type factor struct {
	Neg    bool     `@( "-" )?`
	Number *float64 `(  @Number`
	Symbol *string  ` | @Ident`
	Sub    *expr    ` | "(" @@ ")" )`
}
