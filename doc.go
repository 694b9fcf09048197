// Package chat2doc converts exported chat conversations into readable
// documents: PDF, HTML, Markdown or plain text.
//
// # Quick Start
//
// Create a converter, convert a payload, and close when done:
//
//	conv, err := chat2doc.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, chat2doc.Input{
//	    Payload: data,
//	    Format:  chat2doc.FormatPDF,
//	    Options: chat2doc.DefaultOptions(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(result.FileName, result.Data, 0644)
//
// # Conversion Pipeline
//
//  1. Payload parsing (missing or mistyped fields fall back to placeholders)
//  2. Document building: each message becomes a header, its body blocks,
//     pasted extras and optional model and timing lines
//  3. Message bodies: reasoning removal, LaTeX to Unicode, table detection,
//     line classification and inline bold/italic tokenizing
//  4. Rendering of the block sequence in the requested format; PDF goes
//     through HTML and headless Chrome (go-rod)
//
// Result.Blocks exposes the intermediate block sequence for callers that
// bring their own renderer.
//
// # Configuration
//
// Converter-wide settings are functional options:
//
//	conv, err := chat2doc.NewConverter(
//	    chat2doc.WithTimeout(2 * time.Minute),
//	    chat2doc.WithStyle("compact"),
//	    chat2doc.WithAssetPath("/path/to/custom/assets"),
//	    chat2doc.WithTimestampFormat("iso"),
//	)
//
// Per-document settings travel in Input.Options: which decorations to show,
// custom role labels and the label language (it, en, es, fr, de).
//
// # Parallel Processing
//
// For batch conversion, use ConverterPool to manage multiple browser instances:
//
//	pool := chat2doc.NewConverterPool(4)
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, input)
//
// # Custom Assets
//
// Stylesheets and label translations can be overridden from a directory:
//
//	assets/
//	├── styles/
//	│   └── custom.css
//	└── locales/
//	    └── pt.yaml
//
// Files missing from the directory fall back to the embedded defaults.
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
// Use ROD_BROWSER_BIN to specify a custom Chrome binary. The other formats
// never start a browser.
package chat2doc
