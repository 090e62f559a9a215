package java

// javaLangNames holds the simple names implicitly visible in every
// compilation unit via java.lang. An explicit import whose simple name
// appears here is never folded into a wildcard import, because dropping it
// would let the java.lang name shadow the wildcard-resolved one.
var javaLangNames = func() map[string]struct{} {
	names := []string{
		"AbstractMethodError",
		"Appendable",
		"ArithmeticException",
		"ArrayIndexOutOfBoundsException",
		"ArrayStoreException",
		"AssertionError",
		"AutoCloseable",
		"Boolean",
		"BootstrapMethodError",
		"Byte",
		"CharSequence",
		"Character",
		"Class",
		"ClassCastException",
		"ClassCircularityError",
		"ClassFormatError",
		"ClassLoader",
		"ClassNotFoundException",
		"ClassValue",
		"CloneNotSupportedException",
		"Cloneable",
		"Comparable",
		"Deprecated",
		"Double",
		"Enum",
		"EnumConstantNotPresentException",
		"Error",
		"Exception",
		"ExceptionInInitializerError",
		"Float",
		"FunctionalInterface",
		"IllegalAccessError",
		"IllegalAccessException",
		"IllegalArgumentException",
		"IllegalCallerException",
		"IllegalMonitorStateException",
		"IllegalStateException",
		"IllegalThreadStateException",
		"IncompatibleClassChangeError",
		"IndexOutOfBoundsException",
		"InheritableThreadLocal",
		"InstantiationError",
		"InstantiationException",
		"Integer",
		"InternalError",
		"InterruptedException",
		"Iterable",
		"LayerInstantiationException",
		"LinkageError",
		"Long",
		"Math",
		"Module",
		"ModuleLayer",
		"NegativeArraySizeException",
		"NoClassDefFoundError",
		"NoSuchFieldError",
		"NoSuchFieldException",
		"NoSuchMethodError",
		"NoSuchMethodException",
		"NullPointerException",
		"Number",
		"NumberFormatException",
		"Object",
		"OutOfMemoryError",
		"Override",
		"Package",
		"Process",
		"ProcessBuilder",
		"ProcessHandle",
		"Readable",
		"Record",
		"ReflectiveOperationException",
		"Runnable",
		"Runtime",
		"RuntimeException",
		"RuntimePermission",
		"SafeVarargs",
		"ScopedValue",
		"SecurityException",
		"SecurityManager",
		"Short",
		"StackOverflowError",
		"StackTraceElement",
		"StackWalker",
		"StrictMath",
		"String",
		"StringBuffer",
		"StringBuilder",
		"StringIndexOutOfBoundsException",
		"StringTemplate",
		"SuppressWarnings",
		"System",
		"Thread",
		"ThreadDeath",
		"ThreadGroup",
		"ThreadLocal",
		"Throwable",
		"TypeNotPresentException",
		"UnknownError",
		"UnsatisfiedLinkError",
		"UnsupportedClassVersionError",
		"UnsupportedOperationException",
		"VerifyError",
		"VirtualMachineError",
		"Void",
		"WrongThreadException",
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}()

// conflictsWithJavaLang reports whether the import's simple name collides
// with an implicitly visible java.lang name.
func conflictsWithJavaLang(imp Import) bool {
	return IsJavaLangName(imp.Name)
}

// IsJavaLangName reports whether the simple name is implicitly visible in
// every compilation unit via java.lang.
func IsJavaLangName(name string) bool {
	_, ok := javaLangNames[name]
	return ok
}
