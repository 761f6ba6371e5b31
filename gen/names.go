package gen

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Dart reserved words that cannot be used as identifiers.
var dartReservedWords = map[string]bool{
	"assert": true, "break": true, "case": true, "catch": true, "class": true,
	"const": true, "continue": true, "default": true, "do": true, "else": true,
	"enum": true, "extends": true, "false": true, "final": true, "finally": true,
	"for": true, "if": true, "in": true, "is": true, "new": true, "null": true,
	"rethrow": true, "return": true, "super": true, "switch": true, "this": true,
	"throw": true, "true": true, "try": true, "var": true, "void": true,
	"while": true, "with": true,
}

// Members the generated classes inherit from Object, $grpc.Client and
// $grpc.Service. Handler names must not shadow these.
var dartReservedMemberNames = map[string]bool{
	"hashCode": true, "noSuchMethod": true, "runtimeType": true, "toString": true,
	"createCall": true, "channel": true, "name": true,
}

// escapeDartName appends a '$' to names that would collide with a Dart
// reserved word or an inherited member of the generated classes.
func escapeDartName(name string) string {
	if dartReservedWords[name] || dartReservedMemberNames[name] {
		return name + "$"
	}
	return name
}

// lowerFirst lower-cases the first rune of s and keeps the remainder
// unchanged.
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

// handlerName derives the Dart method name for an RPC.
func handlerName(rpcName string) string {
	return escapeDartName(lowerFirst(rpcName))
}

// clientClassName derives the name of the generated client class. Service
// names that already carry the suffix are kept as they are so that a service
// named FooClient does not produce FooClientClient.
func clientClassName(serviceName string) string {
	if strings.HasSuffix(serviceName, "Client") {
		return serviceName
	}
	return serviceName + "Client"
}

// serverBaseClassName derives the name of the generated abstract server base
// class. A service named FooService produces FooServiceBase rather than
// FooServiceServiceBase.
func serverBaseClassName(serviceName string) string {
	if strings.HasSuffix(serviceName, "Service") {
		return serviceName + "Base"
	}
	return serviceName + "ServiceBase"
}

// fullServiceName joins a package name and a service name. The package part
// is omitted entirely when the file declares no package.
func fullServiceName(pkg, serviceName string) string {
	if pkg == "" {
		return serviceName
	}
	return pkg + "." + serviceName
}

// trimDot removes the leading dot descriptor type references carry.
func trimDot(fqname string) string {
	return strings.TrimPrefix(fqname, ".")
}

// joinDot joins non-empty name segments with dots.
func joinDot(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
