package rbac

// Default role policy. Students drive their own attempts; teachers author
// exams, grade, and read statistics.
var RolePermissions = map[string][]string{
	"student": {
		"exam:view",
		"attempt:create",
		"attempt:save",
		"attempt:submit",
		"attempt:view-own",
		"stats:view-own",
	},
	"teacher": {
		"exam:create",
		"exam:view",
		"exam:view-keys",
		"attempt:view-all",
		"attempt:grade",
		"stats:view",
	},
	"admin": {
		"*", // everything
	},
}
