package semant

type formal struct {
	name string
	typ  string
}

type intrinsic struct {
	class   string
	name    string
	formals []formal
	ret     string
}

var intrinsics = []intrinsic{
	{class: ObjectClass, name: "abort", ret: ObjectClass},
	{class: ObjectClass, name: "type_name", ret: StringClass},
	{class: ObjectClass, name: "copy", ret: SelfType},

	{class: IOClass, name: "in_string", ret: StringClass},
	{class: IOClass, name: "out_string", formals: []formal{{"x", StringClass}}, ret: SelfType},
	{class: IOClass, name: "in_int", ret: IntClass},
	{class: IOClass, name: "out_int", formals: []formal{{"x", IntClass}}, ret: SelfType},

	{class: StringClass, name: "length", ret: IntClass},
	{class: StringClass, name: "substr", formals: []formal{{"index", IntClass}, {"length", IntClass}}, ret: StringClass},
	{class: StringClass, name: "concat", formals: []formal{{"str", StringClass}}, ret: StringClass},
}

// Basic classes whose parent is Object.
var objectChildren = []string{IOClass, StringClass, IntClass, BoolClass}

// A class may not name one of these as its parent.
var forbiddenParents = map[string]bool{
	IntClass:    true,
	StringClass: true,
	BoolClass:   true,
	SelfType:    true,
}

// Edges whose parent is one of these are left out of the heritage graph.
var heritageSkippedParents = map[string]bool{
	IntClass:  true,
	BoolClass: true,
}

// bindIntrinsics defines the basic-class methods and parent links. It is a
// no-op on a context that already has them.
func bindIntrinsics(ctx *Context) {
	object := mustLookup(ctx, ObjectClass)
	for _, name := range objectChildren {
		mustLookup(ctx, name).SetParent(object)
	}

	for _, in := range intrinsics {
		owner := mustLookup(ctx, in.class)
		if owner.Method(in.name) != nil {
			continue
		}
		names := make([]string, len(in.formals))
		types := make([]*Type, len(in.formals))
		for i, f := range in.formals {
			names[i] = f.name
			types[i] = mustLookup(ctx, f.typ)
		}
		owner.DefineMethod(in.name, names, types, mustLookup(ctx, in.ret))
	}
}

// mustLookup is for names NewContext always registers.
func mustLookup(ctx *Context, name string) *Type {
	t, err := ctx.Lookup(name)
	if err != nil {
		panic("semant: basic class missing from context: " + name)
	}
	return t
}
