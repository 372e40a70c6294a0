// Command concierge is an interactive restaurant concierge chat. It wires a
// completion provider (Groq or Gemini), the SQLite-backed restaurant store
// and the tool-calling agent into a terminal REPL.
package main

func main() {
	Execute()
}
