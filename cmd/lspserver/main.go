// Command lspserver is a thin language-server transport over the
// checker core, grounded on escalier's cmd/lsp-server/main.go: same
// glsp.Handler wiring, same textDocument/workspace method set. Real
// incremental parsing and binding-graph maintenance are host
// responsibilities this repository doesn't implement (out of scope,
// §1), so this demo server recognizes a document by matching its text
// against the built-in fixtures in internal/demo rather than parsing
// arbitrary source and publishes that fixture's diagnostics. It serves
// `workspace/executeCommand "check"` by running the fixture named in the
// command's single argument through the checker and returning the
// diagnostic messages as the command's result.
package main

import (
	"fmt"
	"os"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glsp_server "github.com/tliron/glsp/server"

	"github.com/typewell-lang/typewell/internal/demo"
)

const lsName = "typewell"

var version string = "0.0.1"

func main() {
	fmt.Fprintf(os.Stderr, "typewell language server starting\n")

	server := glsp_server.NewServer(NewServer(), lsName, false)

	if err := server.RunStdio(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

type Server struct {
	handler   protocol.Handler
	documents map[protocol.DocumentUri]protocol.TextDocumentItem
}

func NewServer() *Server {
	s := Server{
		documents: map[protocol.DocumentUri]protocol.TextDocumentItem{},
	}
	s.handler = protocol.Handler{
		Initialize:  s.initialize,
		Initialized: s.initialized,
		Shutdown:    s.shutdown,
		SetTrace:    s.setTrace,

		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,

		WorkspaceExecuteCommand: s.workspaceExecuteCommand,
	}
	return &s
}

func (s *Server) Handle(context *glsp.Context) (r any, validMethod bool, validParams bool, err error) {
	return s.handler.Handle(context)
}

func (s *Server) initialize(context *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = protocol.TextDocumentSyncKindFull
	capabilities.ExecuteCommandProvider = &protocol.ExecuteCommandOptions{
		Commands: []string{"check"},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &version,
		},
	}, nil
}

func (*Server) initialized(context *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (*Server) shutdown(context *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (*Server) setTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// validate matches contents against every built-in fixture's source
// text and, on a hit, runs the checker and publishes its diagnostics;
// anything that doesn't match a known fixture publishes an empty set
// rather than guessing at its structure.
func (s *Server) validate(lspContext *glsp.Context, uri protocol.DocumentUri, contents string) {
	diagnostics := []protocol.Diagnostic{}

	if scenario, ok := matchFixture(contents); ok {
		for _, e := range demo.Run(scenario) {
			severity := protocol.DiagnosticSeverityError
			source := lsName
			span := e.Span()
			diagnostics = append(diagnostics, protocol.Diagnostic{
				Range: protocol.Range{
					Start: protocol.Position{
						Line:      protocol.UInteger(span.Start.Line - 1),
						Character: protocol.UInteger(span.Start.Column - 1),
					},
					End: protocol.Position{
						Line:      protocol.UInteger(span.End.Line - 1),
						Character: protocol.UInteger(span.End.Column - 1),
					},
				},
				Severity: &severity,
				Source:   &source,
				Message:  e.Message(),
			})
		}
	}

	go lspContext.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func matchFixture(contents string) (demo.Scenario, bool) {
	for _, name := range demo.Names() {
		scenario, err := demo.Build(name)
		if err == nil && scenario.Source == contents {
			return scenario, true
		}
	}
	return demo.Scenario{}, false
}

func (s *Server) textDocumentDidOpen(context *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.documents[params.TextDocument.URI] = params.TextDocument
	s.validate(context, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (s *Server) textDocumentDidChange(context *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	doc := s.documents[params.TextDocument.URI]

	for _, change := range params.ContentChanges {
		whole, ok := change.(protocol.TextDocumentContentChangeEventWhole)
		if !ok {
			return fmt.Errorf("incremental changes not supported")
		}
		doc = protocol.TextDocumentItem{
			URI:        params.TextDocument.URI,
			LanguageID: doc.LanguageID,
			Version:    params.TextDocument.Version,
			Text:       whole.Text,
		}
		s.documents[params.TextDocument.URI] = doc
		s.validate(context, params.TextDocument.URI, whole.Text)
	}
	return nil
}

func (s *Server) workspaceExecuteCommand(context *glsp.Context, params *protocol.ExecuteCommandParams) (any, error) {
	if params.Command != "check" {
		return nil, fmt.Errorf("unknown command: %s", params.Command)
	}
	if len(params.Arguments) != 1 {
		return nil, fmt.Errorf("invalid arguments: %v", params.Arguments)
	}
	name, ok := params.Arguments[0].(string)
	if !ok {
		return nil, fmt.Errorf("invalid argument: %v", params.Arguments[0])
	}

	scenario, err := demo.Build(name)
	if err != nil {
		return nil, err
	}

	errs := demo.Run(scenario)
	messages := make([]string, len(errs))
	for i, e := range errs {
		messages[i] = e.Message()
	}
	return messages, nil
}
