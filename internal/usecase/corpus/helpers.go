package corpus

import (
	"regexp"
	"strings"
)

// additionalInstructions is appended to every document generation prompt.
const additionalInstructions = "\nIMPORTANTE: el nombre el hotel es GDG Menorca Resort y está ubicado en Menorca. " +
	"Todos los documentos generados tienen que estar en castellano\n" +
	"No incluyas ningún tipo de explicación o comentario, produce el contenido que se te pidió directamente."

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_\-.]`)

// SanitizeFilename replaces every character outside [A-Za-z0-9_-.] with an
// underscore so document titles become safe artifact names.
func SanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

// artifactStem strips the .txt extension from an artifact filename.
func artifactStem(filename string) string {
	return strings.TrimSuffix(filename, ".txt")
}
