package schema

// SourceLocation is the result of resolving a class/method to a file and line.
// Line is 0 when only the file was resolved.
type SourceLocation struct {
	ClassName  string `json:"className"`
	MethodName string `json:"methodName,omitempty"`
	FilePath   string `json:"filePath"`
	Line       uint   `json:"line,omitempty"`
	Found      bool   `json:"found"`
}
