// Package console deals with how the process was started. On Windows a
// double-clicked binary has no terminal, and SDL's initialization replaces
// the Ctrl+C handler Go relies on.
package console

import (
	"log"
	"os"
	"strings"
	"sync"
	"syscall"
	"unsafe"
)

var (
	kernel32                       = syscall.NewLazyDLL("kernel32.dll")
	procGetConsoleWindow           = kernel32.NewProc("GetConsoleWindow")
	procAllocConsole               = kernel32.NewProc("AllocConsole")
	procFreeConsole                = kernel32.NewProc("FreeConsole")
	procGetStdHandle               = kernel32.NewProc("GetStdHandle")
	procCreateToolhelp32Snapshot   = kernel32.NewProc("CreateToolhelp32Snapshot")
	procProcess32First             = kernel32.NewProc("Process32FirstW")
	procProcess32Next              = kernel32.NewProc("Process32NextW")
	procOpenProcess                = kernel32.NewProc("OpenProcess")
	procQueryFullProcessImageNameW = kernel32.NewProc("QueryFullProcessImageNameW")
	procSetConsoleCtrlHandler      = kernel32.NewProc("SetConsoleCtrlHandler")
)

const (
	snapProcess         = 0x00000002
	processQueryLimited = 0x1000
	maxPath             = 260
	ctrlCEvent          = 0
	ctrlBreakEvent      = 1
	ctrlCloseEvent      = 2
	stdInputHandle      = ^uintptr(10 - 1) // (DWORD)-10
	stdOutputHandle     = ^uintptr(11 - 1)
	stdErrorHandle      = ^uintptr(12 - 1)
	invalidHandle       = ^uintptr(0)
)

type processEntry32 struct {
	Size            uint32
	Usage           uint32
	ProcessID       uint32
	DefaultHeapID   uintptr
	ModuleID        uint32
	Threads         uint32
	ParentProcessID uint32
	PriClassBase    int32
	Flags           uint32
	ExeFile         [maxPath]uint16
}

// IsRunningFromConsole reports whether the user started skinview from a
// terminal. A double-clicked console build frees its console window; a GUI
// build started from a terminal gets a console of its own so the log stays
// visible.
func IsRunningFromConsole() bool {
	fromExplorer := launchedFromExplorer()
	if hasConsoleWindow() {
		if fromExplorer {
			procFreeConsole.Call()
			return false
		}
		return true
	}
	if fromExplorer {
		return false
	}
	procAllocConsole.Call()
	redirectStdStreams()
	return true
}

func hasConsoleWindow() bool {
	hwnd, _, _ := procGetConsoleWindow.Call()
	return hwnd != 0
}

// redirectStdStreams points the os and log streams at a freshly allocated
// console; the handles Go picked up at startup are invalid.
func redirectStdStreams() {
	stdout, _, _ := procGetStdHandle.Call(stdOutputHandle)
	stderr, _, _ := procGetStdHandle.Call(stdErrorHandle)
	stdin, _, _ := procGetStdHandle.Call(stdInputHandle)
	if stdout == 0 || stderr == 0 {
		return
	}
	os.Stdout = os.NewFile(stdout, "/dev/stdout")
	os.Stderr = os.NewFile(stderr, "/dev/stderr")
	if stdin != 0 {
		os.Stdin = os.NewFile(stdin, "/dev/stdin")
	}
	log.SetOutput(os.Stderr)
}

func launchedFromExplorer() bool {
	parent := parentProcessID(uint32(os.Getpid()))
	if parent == 0 {
		return false
	}
	name := processImageName(parent)
	if i := strings.LastIndexAny(name, `\/`); i >= 0 {
		name = name[i+1:]
	}
	return strings.EqualFold(name, "explorer.exe")
}

func parentProcessID(pid uint32) uint32 {
	snap, _, _ := procCreateToolhelp32Snapshot.Call(snapProcess, 0)
	if snap == invalidHandle {
		return 0
	}
	defer syscall.CloseHandle(syscall.Handle(snap))

	var entry processEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))
	ok, _, _ := procProcess32First.Call(snap, uintptr(unsafe.Pointer(&entry)))
	for ok != 0 {
		if entry.ProcessID == pid {
			return entry.ParentProcessID
		}
		ok, _, _ = procProcess32Next.Call(snap, uintptr(unsafe.Pointer(&entry)))
	}
	return 0
}

func processImageName(pid uint32) string {
	h, _, _ := procOpenProcess.Call(processQueryLimited, 0, uintptr(pid))
	if h == 0 {
		return ""
	}
	defer syscall.CloseHandle(syscall.Handle(h))

	var buf [maxPath]uint16
	size := uint32(maxPath)
	ok, _, _ := procQueryFullProcessImageNameW.Call(h, 0, uintptr(unsafe.Pointer(&buf[0])), uintptr(unsafe.Pointer(&size)))
	if ok == 0 {
		return ""
	}
	return syscall.UTF16ToString(buf[:size])
}

var (
	handlerOnce sync.Once
	handler     uintptr
)

// HandleInterrupt closes done on Ctrl+C, Ctrl+Break or console close. The
// returned function registers the handler again and must be called after
// any library that installs its own, SDL in particular.
func HandleInterrupt(done chan<- struct{}) func() {
	var closeOnce sync.Once
	handlerOnce.Do(func() {
		handler = syscall.NewCallback(func(ctrlType uint32) uintptr {
			switch ctrlType {
			case ctrlCEvent, ctrlBreakEvent, ctrlCloseEvent:
				closeOnce.Do(func() { close(done) })
				return 1
			}
			return 0
		})
	})

	register := func() {
		if ok, _, _ := procSetConsoleCtrlHandler.Call(handler, 1); ok == 0 {
			log.Printf("Warning: failed to set console control handler")
		}
	}
	register()
	return register
}
