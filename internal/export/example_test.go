// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export_test

import (
	"fmt"

	"github.com/jeranaias/textdiff/internal/diff"
	"github.com/jeranaias/textdiff/internal/export"
	"github.com/jeranaias/textdiff/internal/storage"
)

func ExampleForFormat() {
	exporter, err := export.ForFormat("md", nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(exporter.FileExtension(), exporter.MimeType())
	// Output: .md text/markdown
}

func ExampleNewDocument() {
	c := storage.NewComparison("a.txt", "b.txt", "one\ntwo", "one\n2", diff.Options{})
	doc := export.NewDocument(c, nil)

	fmt.Println(doc.Summary)
	fmt.Print(doc.Unified)
	// Output:
	// +1 -1 =1
	// --- a.txt
	// +++ b.txt
	// @@ -1,2 +1,2 @@
	//  one
	// -two
	// +2
}
