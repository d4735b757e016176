package ioschema

import "github.com/rncdb/rncdb/pkg/schema"

// ddlStatements collects CREATE TABLE statements of models that know how
// to generate them.
func ddlStatements(models []any) []string {
	var res []string
	for _, m := range models {
		if gen, ok := m.(schema.DDLGenerator); ok {
			res = append(res, gen.TableDDL())
		}
	}
	return res
}
