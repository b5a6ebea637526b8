// Package testsupport holds fixtures and recorders shared by package tests.
package testsupport
