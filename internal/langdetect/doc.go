// Package langdetect implements character n-gram language identification
// using a naive-Bayes model refined by Monte-Carlo sampling, grounded on
// the classic short-text language detector this module's behavior is
// specified against.
//
// Build a Factory, load it with LanguageProfile values, then construct one
// Detector per text to classify:
//
//	f := langdetect.NewFactory()
//	if err := f.LoadProfiles(profiles); err != nil {
//		// handle
//	}
//	d, err := f.NewDetector()
//	d.Append(text)
//	lang, err := d.Detect()
package langdetect
