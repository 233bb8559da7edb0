package pkg

type PuttyKeyInfo struct {
	KeyFilePath   string `json:"ppk_filepath"`
	FormatVersion string `json:"ppk_format_version,omitempty"`
	Algorithm     string `json:"ppk_algorithm"`
	Encrypted     bool   `json:"ppk_encrypted"`
	Encryption    string `json:"ppk_encryption,omitempty"`
	Comment       string `json:"ppk_comment,omitempty"`
	BitSize       int    `json:"ppk_bitsize,omitempty"`
	Fingerprint   string `json:"ppk_fingerprint_sha256,omitempty"`
}

type ConvertResult struct {
	KeyFilePath    string `json:"ppk_filepath"`
	OutputFilePath string `json:"openssh_filepath,omitempty"`
	Algorithm      string `json:"algorithm,omitempty"`
	ConvResult     string `json:"convresult"`
	FurtherInfo    string `json:"furtherinfo,omitempty"`
}

type ConnectionTestResult struct {
	KeyFilePath    string `json:"ppk_filepath"`
	Hostname       string `json:"hostname"`
	Port           string `json:"port"`
	Username       string `json:"username"`
	AuthMethod     string `json:"authmethod"`
	ConnTestResult string `json:"conntestresult"`
	FurtherInfo    string `json:"furtherinfo"`
}

type DefaultPaths struct {
	KeyPath        string `json:"default_keypath,omitempty"`
	OutputPath     string `json:"default_outputpath,omitempty"`
	KnownHostsPath string `json:"default_knownhostspath,omitempty"`
}
