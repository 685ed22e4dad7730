package tree

// Sample is the tree shown when the host supplies none.
func Sample() *Node {
	return NewDir("project-root",
		NewDir("src",
			NewDir("components",
				NewFile("FileTree.jsx"),
				NewFile("FileTree.module.css"),
			),
			NewFile("App.jsx"),
			NewFile("index.jsx"),
			NewFile("logo.svg"),
		),
		NewDir("public",
			NewFile("index.html"),
			NewFile("favicon.ico"),
		),
		NewFile("package.json"),
		NewFile("README.md"),
	)
}
