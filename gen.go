package structview

import (
	"fmt"
	"reflect"
	"strings"
)

// GenFieldVars generates Go source declaring one typed field identifier var
// per catalog field of the supplied struct type, the registration step for
// projects preferring named identifiers over FieldOf lookups:
//
//	var (
//		ProductId   = structview.MustFieldOf[Product]("id")
//		ProductName = structview.MustFieldOf[Product]("name")
//	)
//
// The qualifier prefixes this package's identifiers; pass "" when the
// generated code lives in this package.
func GenFieldVars(t reflect.Type, qualifier string) (string, error) {
	aCatalog, err := catalogOf(t)
	if err != nil {
		return "", err
	}
	if qualifier != "" && !strings.HasSuffix(qualifier, ".") {
		qualifier += "."
	}
	typeName := aCatalog.rType.Name()
	if typeName == "" {
		return "", fmt.Errorf("structview: cannot generate field vars for unnamed type %s", aCatalog.rType)
	}
	var builder strings.Builder
	builder.WriteString("var (\n")
	width := 0
	for i := range aCatalog.fields {
		if size := len(typeName) + len(aCatalog.fields[i].fieldName); size > width {
			width = size
		}
	}
	for i := range aCatalog.fields {
		field := &aCatalog.fields[i]
		fmt.Fprintf(&builder, "\t%-*s = %sMustFieldOf[%s](%q)\n", width, typeName+field.fieldName, qualifier, typeName, field.name)
	}
	builder.WriteString(")\n")
	return builder.String(), nil
}
