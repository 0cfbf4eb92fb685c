// This file is Free Software under the MIT License
// without warranty, see README.md and LICENSES/MIT.txt for details.
//
// SPDX-License-Identifier: MIT
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

package vex

import (
	"bytes"
	_ "embed" // Used for embedding.
	"sort"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/vex_json_schema.json
var vexSchema []byte

var (
	compileVexSchemaOnce sync.Once
	compiledVexSchema    *jsonschema.Schema
	compileVexSchemaErr  error
)

func compileVexSchema() (*jsonschema.Schema, error) {
	compileVexSchemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(
			"vex_json_schema.json", bytes.NewReader(vexSchema)); err != nil {
			compileVexSchemaErr = err
			return
		}
		compiledVexSchema, compileVexSchemaErr =
			c.Compile("vex_json_schema.json")
	})
	return compiledVexSchema, compileVexSchemaErr
}

// ValidateVEX validates the generic decoded document data against the
// reduced VEX JSON schema covering the parts this tool reads.
// It returns a sorted list of human readable validation messages,
// empty if the document conforms.
func ValidateVEX(doc any) ([]string, error) {
	schema, err := compileVexSchema()
	if err != nil {
		return nil, err
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil, nil
	}

	valErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, err
	}

	var msgs []string
	var collect func(*jsonschema.ValidationError)
	collect = func(ve *jsonschema.ValidationError) {
		if len(ve.Causes) == 0 {
			msgs = append(msgs, ve.InstanceLocation+": "+ve.Message)
			return
		}
		for _, cause := range ve.Causes {
			collect(cause)
		}
	}
	collect(valErr)

	sort.Strings(msgs)
	return msgs, nil
}
