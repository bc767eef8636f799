// Package i18n provides the English and German user interface texts,
// including the guidance shown for each kind of translation failure.
package i18n
