package config

const (
	// DefaultPackageName is the package reference identity selecting the target assembly
	DefaultPackageName = "Publicizer.Mask"
	// DefaultAssemblyMetadata is the package reference metadata holding the target assembly path
	DefaultAssemblyMetadata = "TargetAssembly"
	// DefaultReferenceAssemblyMetadata marks reference-only artifacts
	DefaultReferenceAssemblyMetadata = "ReferenceAssembly"
	// DefaultOutputName is the rewritten artifact file name
	DefaultOutputName = "publicized.dll"
	// DefaultMaskResource is the fixed mask resource name
	DefaultMaskResource = "Publicizer.Assets.Mask.dll"
)
