package mir

// Void is the largest TmpID value, reserved to mean "this operation
// produces no result" rather than naming a real temporary. Operation.Result
// uses *TmpID so "no result" (return-void, branch, store) is representable
// without colliding with the valid temporary numbered 0; Void documents the
// convention for readers who reach for a literal instead.
const Void TmpID = ^TmpID(0)
