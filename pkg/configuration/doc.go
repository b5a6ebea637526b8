// Package configuration ties a content-type schema, its stored edit-view
// configuration and the layout operations together. A Service opens editing
// Sessions; each Session owns a working copy of the layout and settings until
// it is submitted through a ConfigurationUpdater or discarded.
package configuration
